package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/catatduitmu/backend/internal/controllers/v1"
	"github.com/catatduitmu/backend/internal/models"
	"github.com/catatduitmu/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTelegramLinkLifecycle() {
	// Not linked yet
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/telegram/link", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// Link
	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/telegram/link", v1.TelegramLinkEditable{
		TelegramID: "123456789",
		ChatID:     "123456789",
		Username:   "budi",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.TelegramLinkResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), test.User, response.Data.UserID)
	assert.Equal(suite.T(), "123456789", response.Data.TelegramID)

	// Read it back
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/telegram/link", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// Unlink
	r = test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/telegram/link", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/telegram/link", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestTelegramLinkTakeover verifies that linking a Telegram user that is
// already linked to another account moves it to the current account.
func (suite *TestSuiteStandard) TestTelegramLinkTakeover() {
	existing := models.TelegramLink{
		TelegramID: "123456789",
		ChatID:     "123456789",
		UserID:     "someone-else@example.com",
	}
	suite.Require().NoError(models.DB.Create(&existing).Error)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/telegram/link", v1.TelegramLinkEditable{
		TelegramID: "123456789",
		ChatID:     "123456789",
		Username:   "budi",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.TelegramLinkResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), test.User, response.Data.UserID)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.TelegramLink{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count, "the takeover must not create a second link")
}

func (suite *TestSuiteStandard) TestTelegramLinkInvalid() {
	tests := []struct {
		name string
		body any
	}{
		{"Broken body", `{ "telegramId": 2" }`},
		{"No body", ""},
		{"Missing telegramId", v1.TelegramLinkEditable{ChatID: "123456789"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/telegram/link", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTelegramLinkDeleteWithoutLink() {
	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/telegram/link", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
