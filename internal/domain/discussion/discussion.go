package discussion

type Discussion struct {
	ID         string  `json:"id"`
	CourseID   string  `json:"courseId,omitempty"`
	AuthorID   string  `json:"authorId"`
	AuthorName string  `json:"authorName"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Replies    []Reply `json:"replies"`
	Likes      int     `json:"likes"`
	IsLiked    bool    `json:"isLiked"`
	CreatedAt  string  `json:"createdAt"`
}

type Reply struct {
	ID           string `json:"id"`
	DiscussionID string `json:"discussionId"`
	AuthorID     string `json:"authorId"`
	AuthorName   string `json:"authorName"`
	Content      string `json:"content"`
	Likes        int    `json:"likes"`
	IsLiked      bool   `json:"isLiked"`
	CreatedAt    string `json:"createdAt"`
}
