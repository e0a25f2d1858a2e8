package model

const GroupCharacterLimit = 20

type Group struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (g Group) String() string {
	return Truncate(g.Title, GroupCharacterLimit)
}

type GroupRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}
