package model

// MediaKind distinguishes how a post's attachment is delivered.
type MediaKind string

const (
	// MediaPhoto is sent as a photo with a caption, followed by the full
	// body in a separate message.
	MediaPhoto MediaKind = "photo"
	// MediaVideo is sent as a lead link message (so the transport embeds a
	// player), with the body chained as a reply.
	MediaVideo MediaKind = "video"
)

// Media is an attachment reference delivered alongside a post.
type Media struct {
	Kind MediaKind
	URL  string
}

// Post is a fully rendered message ready for the transport. Caption is the
// photo caption, or the lead message text for video posts.
type Post struct {
	Body           string
	Caption        string
	Media          *Media
	DisablePreview bool
}

// Receipt identifies the first delivered message of a publish; video posts
// chain their body as a reply to it.
type Receipt struct {
	MessageID int64
}
