package promptstyle

import "strings"

const marker = "BLOGWRITER_PROMPT_STYLE_V1"

// ApplySystem prepends a short house-style block to a system prompt. Applying it twice is a no-op.
func ApplySystem(system string, mode string) string {
	base := strings.TrimSpace(system)
	if base == "" {
		return base
	}
	if strings.Contains(base, marker) {
		return base
	}
	mode = strings.ToLower(strings.TrimSpace(mode))

	role := ""
	for _, line := range strings.Split(base, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			role = trimmed
			break
		}
	}

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nYou write editorial content for an online store blog.")
	if role != "" {
		b.WriteString("\nRole: " + role)
	}
	b.WriteString("\nFollow the system and user instructions precisely.")
	b.WriteString("\nOnly reference products that appear in the provided catalog listing.")
	b.WriteString("\nDo not invent prices, product names or product IDs.")
	if mode == "json" {
		b.WriteString("\nReturn a single JSON object that conforms to the output contract and contains no extra keys.")
	} else {
		b.WriteString("\nBe concise and structured when helpful.")
	}
	b.WriteString("\n---\n")
	b.WriteString(base)
	return strings.TrimSpace(b.String())
}
