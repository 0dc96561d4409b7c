package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGormConfigTranslatesDriverErrors(t *testing.T) {
	// The repositories rely on errors.Is(err, gorm.ErrDuplicatedKey) to turn
	// unique-constraint violations into conflicts; that only works when the
	// dialector error translation is switched on.
	assert.True(t, gormConfig().TranslateError)
}
