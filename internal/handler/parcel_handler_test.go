package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/landsale-engine/internal/domain"
	"github.com/segyhp/landsale-engine/internal/mocks"
	customError "github.com/segyhp/landsale-engine/pkg/errors"
)

func TestParcelHandler_CreateParcel(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		parcels := &mocks.MockParcelService{}
		parcels.On("CreateParcel", mock.Anything, mock.MatchedBy(func(r *domain.CreateParcelRequest) bool {
			return r.ParcelNumber == "LOT-7" && r.Acreage.Equal(dec("4.25"))
		})).Return(&domain.Parcel{ID: uuid.New(), ParcelNumber: "LOT-7", Status: domain.ParcelStatusAvailable}, nil).Once()

		rec, env := doRequest(t, newTestRouter(mocks.NewMockSaleService(), parcels), http.MethodPost, "/api/v1/parcels", map[string]interface{}{
			"parcel_number": "LOT-7",
			"location":      "Old mill road",
			"acreage":       "4.25",
			"asking_price":  "24500",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		var got domain.Parcel
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "LOT-7", got.ParcelNumber)
		parcels.AssertExpectations(t)
	})

	t.Run("duplicate number", func(t *testing.T) {
		parcels := &mocks.MockParcelService{}
		parcels.On("CreateParcel", mock.Anything, mock.Anything).
			Return(nil, customError.WrapParcelAlreadyExists("LOT-7")).Once()

		rec, env := doRequest(t, newTestRouter(mocks.NewMockSaleService(), parcels), http.MethodPost, "/api/v1/parcels", map[string]interface{}{
			"parcel_number": "LOT-7",
			"location":      "Old mill road",
			"acreage":       "4.25",
			"asking_price":  "24500",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, customError.ErrCodeParcelAlreadyExists, env.Code)
	})

	t.Run("missing location", func(t *testing.T) {
		parcels := &mocks.MockParcelService{}

		rec, env := doRequest(t, newTestRouter(mocks.NewMockSaleService(), parcels), http.MethodPost, "/api/v1/parcels", map[string]interface{}{
			"parcel_number": "LOT-7",
			"acreage":       "4.25",
			"asking_price":  "24500",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, env.Error, "location")
		parcels.AssertNotCalled(t, "CreateParcel", mock.Anything, mock.Anything)
	})
}

func TestParcelHandler_GetAndList(t *testing.T) {
	id := uuid.New()
	parcels := &mocks.MockParcelService{}
	parcels.On("GetParcel", mock.Anything, id).Return(&domain.Parcel{ID: id}, nil).Once()
	parcels.On("ListParcels", mock.Anything, domain.ParcelStatusSold).Return([]*domain.Parcel{{ID: id}}, nil).Once()
	router := newTestRouter(mocks.NewMockSaleService(), parcels)

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/parcels/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/parcels?status=sold", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Parcel
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 1)

	parcels.AssertExpectations(t)
}

func TestRouter_Preflight(t *testing.T) {
	router := newTestRouter(mocks.NewMockSaleService(), &mocks.MockParcelService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/sales", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
