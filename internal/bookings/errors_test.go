package bookings

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_UnwrapsThroughLayers(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(KindStoreUnavailable, "failed to persist hold", cause)
	wrapped := fmt.Errorf("request failed: %w", err)

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindStoreUnavailable, kind)
	assert.ErrorIs(t, wrapped, cause)
}

func TestKindOf_ForeignError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsKind(errors.New("plain"), KindInvalidRequest))
}

func TestErrorKind_HTTPStatus(t *testing.T) {
	cases := map[ErrorKind]int{
		KindSlotUnavailable:        http.StatusConflict,
		KindIntentAlreadyFinalized: http.StatusConflict,
		KindInvalidStateTransition: http.StatusConflict,
		KindIntentNotFound:         http.StatusNotFound,
		KindBookingNotFound:        http.StatusNotFound,
		KindIntentExpired:          http.StatusGone,
		KindInvalidRequest:         http.StatusBadRequest,
		KindStoreUnavailable:       http.StatusServiceUnavailable,
		KindPricingFailure:         http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equalf(t, want, kind.HTTPStatus(), "kind %s", kind)
	}
}

func TestErrorKind_Retryable(t *testing.T) {
	assert.True(t, KindStoreUnavailable.Retryable())
	assert.False(t, KindSlotUnavailable.Retryable())
	assert.False(t, KindPricingFailure.Retryable())
}
