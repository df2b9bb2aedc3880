package router

import "regexp"

type ruleSpec struct {
	family  Family
	name    string
	booster bool
	pattern string
}

var ruleSpecs = []ruleSpec{
	// code
	{FamilyCode, "language", false, `\b(python|javascript|java|c\+\+|rust|go|typescript|php|ruby|swift|kotlin)\b`},
	{FamilyCode, "code_keyword", false, `\b(function|class|method|variable|algorithm|code|script|program|debug|bug|error|exception)\b`},
	{FamilyCode, "dev_term", false, `\b(api|database|framework|library|package|module|import|export|compile|deploy)\b`},
	{FamilyCode, "syntax_token", false, `\b(if|else|for|while|return|def|var|let|const|public|private|static)\b`},
	{FamilyCode, "file_extension", false, `\.(py|js|java|cpp|rs|go|ts|php|rb|swift|kt|html|css|sql)\b`},
	{FamilyCode, "dev_activity", false, `\b(implement|code|program|develop|build|create.*(function|class|method|api))\b`},
	{FamilyCode, "maintenance", false, `\b(fix.*(bug|error)|debug|refactor|optimize.*(code|algorithm))\b`},
	{FamilyCode, "explicit_code_request", true, `\b(write|create|implement|build).*(code|function|class|script)\b`},

	// image
	{FamilyImage, "generate_visual", false, `\b(generate|create|make|draw|design|produce).*(image|picture|photo|illustration|artwork|graphic)\b`},
	{FamilyImage, "visual_of", false, `\b(image|picture|photo|illustration|artwork|graphic|drawing|painting|sketch).*(of|showing|depicting)\b`},
	{FamilyImage, "visual_term", false, `\b(visualize|visual|graphic|art|artistic|creative|aesthetic)\b`},
	{FamilyImage, "visual_asset", false, `\b(logo|icon|banner|poster|diagram|chart|infographic)\b`},
	{FamilyImage, "art_style", false, `\b(realistic|cartoon|anime|abstract|minimalist|vintage|modern)\b`},
	{FamilyImage, "art_action", false, `\b(draw|paint|sketch|render|design|illustrate)\b`},
	{FamilyImage, "explicit_image_request", true, `\b(generate|create|make|draw).*(image|picture|photo)\b`},

	// freshness
	{FamilyFresh, "recency", false, `\b(latest|recent|current|new|today|this (week|month|year)|2024|2025)\b`},
	{FamilyFresh, "news", false, `\b(news|updates|trends|developments|happenings)\b`},
	{FamilyFresh, "happening_now", false, `\b(what.*(happening|going on)|current (status|situation|state))\b`},
	{FamilyFresh, "volatile_value", false, `\b(price|stock|market|weather|score|result)\b`},
	{FamilyFresh, "scheduling", false, `\b(events|schedule|calendar|availability|status)\b`},
}

var defaultRules = compileRules(ruleSpecs)

func compileRules(specs []ruleSpec) []Rule {
	rules := make([]Rule, 0, len(specs))
	for _, s := range specs {
		rules = append(rules, Rule{
			Family:  s.family,
			Name:    s.name,
			Booster: s.booster,
			Pattern: regexp.MustCompile(s.pattern),
		})
	}
	return rules
}
