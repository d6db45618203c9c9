package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

func TestAuthorizeGrantsOnIntersection(t *testing.T) {
	assert.NoError(t, Authorize([]string{"ROLE_ADMIN"}, []string{"ROLE_ADMIN"}))
	assert.NoError(t, Authorize([]string{"ROLE_USER", "ROLE_ADMIN"}, []string{"ROLE_ADMIN"}))
	assert.NoError(t, Authorize([]string{"ROLE_USER"}, []string{"ROLE_ADMIN", "ROLE_USER"}))
}

func TestAuthorizeDeniesWithoutIntersection(t *testing.T) {
	err := Authorize([]string{"ROLE_USER"}, []string{"ROLE_ADMIN"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ACCESS_DENIED", domainErr.Code)
	assert.Equal(t, 403, domainErr.HTTPStatus)

	assert.Error(t, Authorize(nil, []string{"ROLE_ADMIN"}))
	assert.Error(t, Authorize([]string{}, []string{"ROLE_USER"}))
}

func TestAuthorizeWithNoRequirementsGrants(t *testing.T) {
	assert.NoError(t, Authorize([]string{"ROLE_USER"}, nil))
	assert.NoError(t, Authorize(nil, nil))
}
