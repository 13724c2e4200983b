package product

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"

	"catalog/domain"
	"catalog/pkg/httperror"

	"github.com/go-playground/validator/v10"
)

// ProductInput is the transport-independent mutation payload. Price and
// CategoryID are pointers so that "missing" and "zero" stay distinct.
type ProductInput struct {
	Name        string  `json:"name" form:"name" validate:"required"`
	Price       *int64  `json:"price" form:"price" validate:"required,gte=0"`
	Description *string `json:"description" form:"description"`
	CategoryID  *int64  `json:"categoryId" form:"categoryId" validate:"required,gt=0"`
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput checks field constraints and that the category resolves
// to a live row. op scopes the error codes ("product.create",
// "product.update"). All violations are collected before failing.
func validateInput(ctx context.Context, repository Repository, in *ProductInput, op string) error {
	violations := map[string]string{}

	if err := validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return httperror.InternalServerError(
				op+".validation_error",
				"An unexpected validation error occurred",
				nil,
			)
		}
		for _, fe := range ve {
			violations[fe.Field()] = violationMessage(fe)
		}
	}

	if _, invalid := violations["categoryId"]; !invalid && in.CategoryID != nil {
		if _, err := repository.GetCategoryByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				violations["categoryId"] = "must reference an existing category"
			} else {
				return httperror.InternalServerError(
					op+".category_lookup_failed",
					"Failed to resolve category",
					nil,
				)
			}
		}
	}

	if len(violations) > 0 {
		return httperror.BadRequest(
			op+".validation_failed",
			"Validation failed for the request",
			violations,
		)
	}

	return nil
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}

// apply overwrites the mutable fields of p. ID, CreatedAt and ImageURL
// are left alone.
func (in *ProductInput) apply(p *domain.Product) {
	p.Name = in.Name
	p.Price = *in.Price
	p.Description = in.Description
	p.CategoryID = *in.CategoryID
}
