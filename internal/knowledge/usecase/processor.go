package usecase

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	artifactRes  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Cookie\s+Policy|Privacy\s+Policy|Terms\s+of\s+Service`),
		regexp.MustCompile(`(?i)Subscribe\s+to\s+newsletter|Sign\s+up\s+for\s+updates`),
		regexp.MustCompile(`(?i)Share\s+on\s+social\s+media|Follow\s+us`),
		regexp.MustCompile(`(?i)Home\s+>\s+|Breadcrumb|Navigation`),
	}
	ellipsisRe    = regexp.MustCompile(`\.{3,}`)
	dashesRe      = regexp.MustCompile(`-{3,}`)
	quoteReplacer = strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'")

	navigationRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(Home|About|Contact|Services|Products|Blog|News)(\s*\|\s*\w+)*$`),
		regexp.MustCompile(`(?i)^\d+\s*:\s*\d+\s*(AM|PM)?\s*$`),
		regexp.MustCompile(`(?i)^Copyright\s+©`),
		regexp.MustCompile(`(?i)^All\s+rights\s+reserved`),
	}

	sentenceRe = regexp.MustCompile(`[.!?]+`)
	codeRe     = regexp.MustCompile(`\b(def\s+\w+|class\s+\w+|import\s+\w+|function\s*\()`)
	tutorialRe = regexp.MustCompile(`(?i)\b(Step\s+\d+|First|Second|Next|Finally)\b`)
	qaRe       = regexp.MustCompile(`(?i)(\bQ:|\bA:|\bQuestion\b|\bAnswer\b)`)
	topicRe    = regexp.MustCompile(`\b(api|database|server|client|authentication|security|performance|optimization|algorithm|data|model|framework|library|service|architecture|design|pattern|testing|deployment|development|programming|software|technology|system|network|web|mobile|cloud|docker|kubernetes|python|javascript|react|node|sql|nosql|rest|graphql|microservice|ai|ml|machine learning|artificial intelligence)\b`)
)

// chunk is a cleaned, accepted piece of a source text.
type chunk struct {
	Index    int
	Text     string
	Metadata map[string]any
}

// CleanText collapses whitespace and strips common page boilerplate.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	for _, re := range artifactRes {
		text = re.ReplaceAllString(text, "")
	}
	text = ellipsisRe.ReplaceAllString(text, "...")
	text = dashesRe.ReplaceAllString(text, "---")
	text = quoteReplacer.Replace(text)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// keepChunk reports whether a cleaned chunk is worth storing.
func keepChunk(text string, minSize int) bool {
	runes := []rune(text)
	if len(runes) < minSize {
		return false
	}

	words := strings.Fields(text)
	if len(words) < minChunkWords {
		return false
	}

	alnum := 0
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			alnum++
		}
	}
	if float64(alnum)/float64(len(runes)) < minAlnumRatio {
		return false
	}

	trimmed := strings.TrimSpace(text)
	for _, re := range navigationRes {
		if re.MatchString(trimmed) {
			return false
		}
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
	}
	return float64(len(unique))/float64(len(words)) >= minUniqueRatio
}

// chunkMetadata copies base and adds statistics derived from the chunk text.
func chunkMetadata(text string, base map[string]any) map[string]any {
	meta := make(map[string]any, len(base)+6)
	for k, v := range base {
		meta[k] = v
	}

	meta[MetaChunkLength] = len([]rune(text))
	meta[MetaWordCount] = len(strings.Fields(text))
	meta[MetaSentenceCount] = len(sentenceRe.FindAllString(text, -1))
	meta[MetaContentType] = detectContentType(text)

	if topics := extractTopics(text); len(topics) > 0 {
		meta[MetaTopics] = topics
	}
	return meta
}

func detectContentType(text string) string {
	switch {
	case codeRe.MatchString(text):
		return ContentCode
	case tutorialRe.MatchString(text):
		return ContentTutorial
	case qaRe.MatchString(text):
		return ContentQA
	default:
		return ContentGeneral
	}
}

// extractTopics returns up to maxTopics distinct technical keywords, sorted.
func extractTopics(text string) []string {
	seen := map[string]struct{}{}
	for _, m := range topicRe.FindAllString(strings.ToLower(text), -1) {
		if len(seen) == maxTopics {
			break
		}
		seen[m] = struct{}{}
	}
	if len(seen) == 0 {
		return nil
	}

	topics := make([]string, 0, len(seen))
	for t := range seen {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

// process cleans, splits and filters content. Chunk indexes keep their
// position in the split, so filtered chunks leave gaps.
func (uc *implUseCase) process(content string, base map[string]any) ([]chunk, error) {
	cleaned := CleanText(content)
	if cleaned == "" {
		return nil, nil
	}

	parts, err := uc.splitter.SplitText(cleaned)
	if err != nil {
		return nil, err
	}

	chunks := make([]chunk, 0, len(parts))
	for i, part := range parts {
		text := CleanText(part)
		if !keepChunk(text, uc.opts.MinChunkSize) {
			continue
		}
		meta := chunkMetadata(text, base)
		meta[MetaChunkIndex] = i
		chunks = append(chunks, chunk{Index: i, Text: text, Metadata: meta})
	}
	return chunks, nil
}
