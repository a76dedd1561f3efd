package validators

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

type CreateGroupRequest struct {
	ChatID int64 `json:"chat_id" validate:"required"`
}

type UserRefRequest struct {
	ID        int64  `json:"id" validate:"required"`
	FirstName string `json:"first_name" validate:"required,max=64"`
	LastName  string `json:"last_name" validate:"omitempty,max=64"`
}

type AddRideRequest struct {
	User        UserRefRequest `json:"user" validate:"required"`
	Time        time.Time      `json:"time" validate:"required"`
	Description string         `json:"description" validate:"omitempty,max=200"`
	Direction   string         `json:"direction" validate:"required,oneof=coming going"`
}

type SetRideFullRequest struct {
	State *int `json:"state" validate:"required,min=0,max=1"`
}

type SweepRequest struct {
	Now *time.Time `json:"now"`
}

// ValidateStruct runs the struct tags and flattens failures into a
// field -> message map for the validation error response.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	details := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			details[field] = "is required"
		case "oneof":
			details[field] = "must be one of: " + fieldErr.Param()
		case "max":
			details[field] = "must be at most " + fieldErr.Param()
		case "min":
			details[field] = "must be at least " + fieldErr.Param()
		default:
			details[field] = "is invalid"
		}
	}

	return details
}
