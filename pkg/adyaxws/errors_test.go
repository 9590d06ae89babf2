package adyaxws_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tendant/adyax-ws/pkg/adyaxws"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestValidationError_FiltersEmptyMessages(t *testing.T) {
	verr := adyaxws.NewValidationError("first", "", "second")
	verr.Add("")
	verr.Add("third")

	assert.Equal(t, 3, verr.Len())
	assert.Equal(t, []string{"first", "second", "third"}, verr.Messages())
	assert.Equal(t, "validation failed: first; second; third", verr.Error())
}

func TestValidationError_ErrOrNil(t *testing.T) {
	assert.NoError(t, adyaxws.NewValidationError().ErrOrNil())
	assert.NoError(t, adyaxws.NewValidationError("").ErrOrNil())

	var nilErr *adyaxws.ValidationError
	assert.NoError(t, nilErr.ErrOrNil())

	assert.Error(t, adyaxws.NewValidationError("boom").ErrOrNil())
}

func TestMessages(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		err := adyaxws.NewValidationError("a", "b")
		assert.Equal(t, []string{"a", "b"}, adyaxws.Messages(err))
	})

	t.Run("wrapped validation error", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", adyaxws.NewValidationError("a"))
		assert.Equal(t, []string{"a"}, adyaxws.Messages(err))
		assert.True(t, adyaxws.IsValidationError(err))
	})

	t.Run("other errors", func(t *testing.T) {
		assert.Nil(t, adyaxws.Messages(errors.New("boom")))
		assert.Nil(t, adyaxws.Messages(nil))
		assert.False(t, adyaxws.IsValidationError(errors.New("boom")))
	})

	t.Run("messages are copied", func(t *testing.T) {
		err := adyaxws.NewValidationError("a")
		msgs := adyaxws.Messages(err)
		msgs[0] = "changed"
		assert.Equal(t, []string{"a"}, adyaxws.Messages(err))
	})
}

func TestNodeError(t *testing.T) {
	err := &adyaxws.NodeError{NodeID: 3, Op: "update", Err: adyaxws.ErrNodeNotFound}
	assert.Equal(t, "node operation update failed for node 3: node not found", err.Error())
	assert.ErrorIs(t, err, adyaxws.ErrNodeNotFound)
}
