package services

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"meetup-lab/errors"
)

var validate = validator.New()

// AddTopicRequest proposes a new discussion topic.
type AddTopicRequest struct {
	Title        string `validate:"required"`
	Category     string `validate:"required,oneof=marketing branding blogging pinterest"`
	Description  string `validate:"required"`
	ScheduledFor *time.Time
}

// AddResourceRequest attaches preparation material to an existing topic.
type AddResourceRequest struct {
	TopicID uuid.UUID `validate:"required"`
	Title   string    `validate:"required"`
	Kind    string    `validate:"required,oneof=video article link"`
	URL     string    `validate:"required,url"`
	AddedBy string
}

// AddQuestionRequest raises a question under an existing topic.
type AddQuestionRequest struct {
	TopicID uuid.UUID `validate:"required"`
	Content string    `validate:"required"`
	AskedBy string
}

// AnswerQuestionRequest sets or overwrites a question's answer.
type AnswerQuestionRequest struct {
	TopicID    uuid.UUID `validate:"required"`
	QuestionID uuid.UUID `validate:"required"`
	Answer     string    `validate:"required"`
}

// checkRequest runs struct validation and converts the first failure into
// the planner's ValidationError kind, so callers never see validator
// internals.
func checkRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrors) == 0 {
		return errors.NewValidation("request", err.Error())
	}
	fe := fieldErrors[0]
	switch fe.Tag() {
	case "required":
		return errors.NewValidation(fe.Field(), "cannot be empty")
	case "oneof":
		return errors.NewValidation(fe.Field(), "must be one of "+fe.Param())
	case "url":
		return errors.NewValidation(fe.Field(), "must be an absolute URL")
	default:
		return errors.NewValidation(fe.Field(), "is invalid")
	}
}
