package oidc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimsPreferStandardNames(t *testing.T) {
	c := claims{
		Email:      " jane@example.com ",
		GivenName:  "Jane",
		FamilyName: "Doe",
		Picture:    "https://img.example.com/jane.png",
		FirstName:  "ignored",
	}
	id := c.identity("sub-1")

	assert.Equal(t, "sub-1", id.Subject)
	assert.Equal(t, "jane@example.com", id.Email)
	assert.Equal(t, "Jane", id.FirstName)
	assert.Equal(t, "Doe", id.LastName)
	assert.Equal(t, "https://img.example.com/jane.png", id.ProfileImageURL)
}

func TestClaimsFallBackToSnakeCase(t *testing.T) {
	c := claims{FirstName: "Sam", LastName: "Lee", ProfileImageURL: "https://img/sam"}
	id := c.identity("sub-2")

	assert.Equal(t, "Sam", id.FirstName)
	assert.Equal(t, "Lee", id.LastName)
	assert.Equal(t, "https://img/sam", id.ProfileImageURL)
}

func TestNewRequiresIssuerAndClient(t *testing.T) {
	_, err := New(context.Background(), Config{ClientID: "x"})
	assert.Error(t, err)
	_, err = New(context.Background(), Config{IssuerURL: "https://id.example.com"})
	assert.Error(t, err)
}
