package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

type stubRequirementRepo struct {
	requirement *visa.Requirement
	err         error
}

func (r *stubRequirementRepo) FindByTriple(context.Context, common.CountryCode, common.CountryCode, visa.Purpose) (*visa.Requirement, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.requirement == nil {
		return nil, errors.New(errors.ErrCodeRequirementNotFound, "no requirement for triple")
	}
	return r.requirement, nil
}

func (r *stubRequirementRepo) FindByID(context.Context, common.ID) (*visa.Requirement, error) {
	return r.requirement, nil
}

func requirementRouter(repo visa.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	resolver := visa.NewResolver(repo, nil, logging.NewNopLogger())
	NewRequirementHandler(resolver, logging.NewNopLogger()).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func getJSON(t *testing.T, router *gin.Engine, url string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(rec, req)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestResolveFoundRequirement(t *testing.T) {
	router := requirementRouter(&stubRequirementRepo{requirement: &visa.Requirement{
		ID:                    common.NewID(),
		PassportCountry:       "CN",
		DestinationCountry:    "DE",
		TravelPurpose:         visa.PurposeTourism,
		VisaType:              visa.TypeEmbassyVisa,
		ProcessingTimeMinDays: 5,
		ProcessingTimeMaxDays: 15,
	}})

	rec, body := getJSON(t, router, "/api/v1/requirements?passport=CN&destination=DE&purpose=TOURISM")
	assert.Equal(t, http.StatusOK, rec.Code)

	var data ResolutionResponse
	require.NoError(t, json.Unmarshal(body["data"], &data))
	assert.True(t, data.Found)
	require.NotNil(t, data.Requirement)
	assert.Equal(t, visa.TypeEmbassyVisa, data.Requirement.VisaType)
}

func TestResolveUncuratedCorridorIsOK(t *testing.T) {
	router := requirementRouter(&stubRequirementRepo{})

	rec, body := getJSON(t, router, "/api/v1/requirements?passport=DE&destination=FR")
	assert.Equal(t, http.StatusOK, rec.Code, "an unknown corridor is a successful lookup, not a 404")

	var data ResolutionResponse
	require.NoError(t, json.Unmarshal(body["data"], &data))
	assert.False(t, data.Found)
	assert.Nil(t, data.Requirement)
}

func TestResolveDefaultsPurposeToTourism(t *testing.T) {
	repo := &stubRequirementRepo{requirement: &visa.Requirement{
		PassportCountry:    "CN",
		DestinationCountry: "DE",
		TravelPurpose:      visa.PurposeTourism,
		VisaType:           visa.TypeEVisa,
	}}
	router := requirementRouter(repo)

	rec, _ := getJSON(t, router, "/api/v1/requirements?passport=CN&destination=DE")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResolveRejectsBadInput(t *testing.T) {
	router := requirementRouter(&stubRequirementRepo{})

	rec, body := getJSON(t, router, "/api/v1/requirements?passport=CHN&destination=DE")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errDetail common.ErrorDetail
	require.NoError(t, json.Unmarshal(body["error"], &errDetail))
	assert.Equal(t, string(errors.CodeInvalidParam), errDetail.Code)
}

func TestResolveInfrastructureFailureIs500(t *testing.T) {
	router := requirementRouter(&stubRequirementRepo{
		err: errors.New(errors.ErrCodeDatabaseError, "connection reset"),
	})

	rec, _ := getJSON(t, router, "/api/v1/requirements?passport=CN&destination=DE")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

//Personal.AI order the ending
