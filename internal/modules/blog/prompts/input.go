package prompts

// Input is a superset of all fields any blog prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	TopicTitle       string
	TopicDescription string
	GroupingBlock    string
	// Bucketed product listing rendered by the writer.
	ProductSection string
	// Existing blog slugs, one per line, already capped.
	ExistingSlugs string
	// Filled by Build from the prompt schema.
	OutputContract string
	MinFAQs        int
	MinWords       int
	MaxWords       int
}
