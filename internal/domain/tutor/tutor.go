package tutor

type Session struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Subject   string        `json:"subject"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"` // user | assistant
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}
