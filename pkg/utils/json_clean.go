package utils

import "strings"

// CleanJSONResponse strips markdown fences and chatty prefixes that LLMs wrap
// around JSON payloads, then narrows the text to the outermost JSON value.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")

	prefixes := []string{
		"Here are the trivia questions:",
		"Here is the trivia question:",
		"Here's your question:",
		"Questions:",
		"Sure!",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.TrimSpace(response), prefix) {
			response = strings.TrimPrefix(strings.TrimSpace(response), prefix)
			break
		}
	}

	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		if arrEnd := findMatchingBracket(response, arrStart); arrEnd != -1 {
			response = response[arrStart : arrEnd+1]
		}
	} else if objStart != -1 {
		if objEnd := findMatchingBrace(response, objStart); objEnd != -1 {
			response = response[objStart : objEnd+1]
		}
	}

	return strings.TrimSpace(response)
}

func findMatchingBrace(s string, start int) int {
	return findMatchingDelimiter(s, start, '{', '}')
}

func findMatchingBracket(s string, start int) int {
	return findMatchingDelimiter(s, start, '[', ']')
}

func findMatchingDelimiter(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}

		if char == '\\' && inString {
			escaped = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
