package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrCategoryBudgetNotUnique = errors.New("only one budget can exist per user, category, subcategory and year")
	ErrAmountRangeInverted     = errors.New("the lower bound of the amount range must not exceed the upper bound")
)
