// Package templates embeds the text templates used to render recommendations.
package templates

import _ "embed"

//go:embed recommendation.md.tmpl
var RecommendationMarkdown string
