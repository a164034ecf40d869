package entity

type FeedbackType struct {
	Base
	Title string `db:"title"`
}
