package batch

import "github.com/FrenchMajesty/geo-compliance/pkg/tabular"

var sampleFeatures = [][3]string{
	{"Age Verification System", "Implement age gates for users under 18 to comply with COPPA and state regulations", "age_verification_specs.pdf"},
	{"Location-Based Content Filtering", "Block content based on user location to meet regional compliance requirements", "geo_blocking_requirements.txt"},
	{"User Profile Management", "Basic user profile creation and management functionality", ""},
	{"Live Streaming Feature", "Allow users to stream live video content to their followers", "live_streaming_policy.pdf"},
	{"E-commerce Integration", "Enable users to purchase products directly through the platform", "ecommerce_compliance.pdf"},
	{"Content Recommendation Algorithm", "AI-powered content recommendation system that personalizes user experience", "algorithm_transparency_report.pdf"},
	{"User-Generated Content Platform", "Platform for users to upload and share their own content", "ugc_guidelines.pdf"},
	{"Advertising System", "Targeted advertising system with user data analysis", "advertising_policy.pdf"},
	{"Data Analytics Dashboard", "Analytics dashboard for tracking user behavior and platform metrics", "analytics_privacy_policy.pdf"},
	{"Social Media Sharing", "Social media integration allowing users to share content across platforms", "social_sharing_terms.pdf"},
}

// SampleTable returns an input table of example features
func SampleTable() *tabular.Table {
	table := tabular.New(ColumnTitle, ColumnDescription, ColumnDocuments)
	for _, f := range sampleFeatures {
		table.Append(map[string]string{
			ColumnTitle:       f[0],
			ColumnDescription: f[1],
			ColumnDocuments:   f[2],
		})
	}
	return table
}
