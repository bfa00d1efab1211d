package bot

// Category identifies which content track a cycle posts from.
type Category string

const (
	// CategoryFedja promotes the $FEDJA token.
	CategoryFedja Category = "fedja"
	// CategoryGeneral covers crypto, AI and DeFi commentary.
	CategoryGeneral Category = "general"
)

// Post is one composed social post. Built per cycle, discarded after publish.
type Post struct {
	Category  Category
	Text      string
	MediaPath string
}
