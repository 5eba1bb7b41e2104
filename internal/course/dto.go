package course

type CreateCourseInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Language    string     `json:"language"`
	Difficulty  Difficulty `json:"difficulty"`
	CreatedBy   uint       `json:"created_by"`
}

type UpdateCourseInput struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Language    *string     `json:"language"`
	Difficulty  *Difficulty `json:"difficulty"`
	IsPublished *bool       `json:"is_published"`
}
