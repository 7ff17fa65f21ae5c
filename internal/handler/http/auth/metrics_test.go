package auth

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAuthRequest(t *testing.T) {
	authRequestsTotal.Reset()

	RecordAuthRequest(ActionSignIn, ResultSuccess)
	RecordAuthRequest(ActionSignIn, ResultSuccess)
	RecordAuthRequest(ActionSignIn, ResultFailure)

	assert.Equal(t, 2.0, testutil.ToFloat64(authRequestsTotal.WithLabelValues(ActionSignIn, ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(authRequestsTotal.WithLabelValues(ActionSignIn, ResultFailure)))
}

func TestRecordAuthDuration(t *testing.T) {
	authDuration.Reset()

	RecordAuthDuration(ActionSignUp, 0.2)
	RecordAuthDuration(ActionSignUp, 0.3)
	RecordAuthDuration(ActionResolve, 0.001)

	assert.Equal(t, 2, testutil.CollectAndCount(authDuration))
}

func TestRecordUnauthenticated(t *testing.T) {
	unauthenticatedTotal.Reset()

	RecordUnauthenticated("POST")
	RecordUnauthenticated("POST")
	RecordUnauthenticated("DELETE")

	assert.Equal(t, 2.0, testutil.ToFloat64(unauthenticatedTotal.WithLabelValues("POST")))
	assert.Equal(t, 1.0, testutil.ToFloat64(unauthenticatedTotal.WithLabelValues("DELETE")))
}
