package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kovertlabs/deepcover/internal/domain"
)

func testCellView() *domain.CellView {
	return &domain.CellView{
		Cell: domain.Cell{
			ID:         "9e8c2f7a-1b3d-4c5e-8f90-0a1b2c3d4e5f",
			Name:       "Night Watch",
			InviteCode: "NW7K2P",
			OwnerID:    42,
		},
		MemberCount:   3,
		ProfitPerHour: 450,
		MemberIDs:     []int64{42, 7, 99},
	}
}

func TestHandleCreateCell(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		setupMocks     func(*MockCellService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Created",
			reqBody: CreateCellRequest{PlayerID: 42, Name: "Night Watch"},
			setupMocks: func(mc *MockCellService) {
				mc.On("Create", mock.Anything, int64(42), "Night Watch").Return(testCellView(), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"invite_code":"NW7K2P"`,
		},
		{
			name:    "Already a member elsewhere",
			reqBody: CreateCellRequest{PlayerID: 42, Name: "Night Watch"},
			setupMocks: func(mc *MockCellService) {
				mc.On("Create", mock.Anything, int64(42), "Night Watch").
					Return(nil, domain.ErrAlreadyInCell)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgAlreadyInCellError,
		},
		{
			name:           "Name too short",
			reqBody:        CreateCellRequest{PlayerID: 42, Name: "NW"},
			setupMocks:     func(mc *MockCellService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCell := new(MockCellService)
			tt.setupMocks(mockCell)

			body, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest("POST", "/api/v1/cell/create", bytes.NewBuffer(body))
			rec := httptest.NewRecorder()

			NewCellHandler(mockCell).HandleCreate(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			mockCell.AssertExpectations(t)
		})
	}
}

func TestHandleJoinCell(t *testing.T) {
	t.Run("Joined by invite code", func(t *testing.T) {
		mockCell := new(MockCellService)
		mockCell.On("Join", mock.Anything, int64(7), "NW7K2P").Return(testCellView(), nil)

		body, _ := json.Marshal(JoinCellRequest{PlayerID: 7, InviteCode: "NW7K2P"})
		req := httptest.NewRequest("POST", "/api/v1/cell/join", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		NewCellHandler(mockCell).HandleJoin(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"member_count":3`)
		mockCell.AssertExpectations(t)
	})

	t.Run("Bad invite code", func(t *testing.T) {
		mockCell := new(MockCellService)
		mockCell.On("Join", mock.Anything, int64(7), "XXXXXX").Return(nil, domain.ErrCellNotFound)

		body, _ := json.Marshal(JoinCellRequest{PlayerID: 7, InviteCode: "XXXXXX"})
		req := httptest.NewRequest("POST", "/api/v1/cell/join", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		NewCellHandler(mockCell).HandleJoin(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgCellNotFoundError)
	})

	t.Run("Second membership rejected", func(t *testing.T) {
		mockCell := new(MockCellService)
		mockCell.On("Join", mock.Anything, int64(7), "NW7K2P").Return(nil, domain.ErrAlreadyInCell)

		body, _ := json.Marshal(JoinCellRequest{PlayerID: 7, InviteCode: "NW7K2P"})
		req := httptest.NewRequest("POST", "/api/v1/cell/join", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		NewCellHandler(mockCell).HandleJoin(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgAlreadyInCellError)
	})
}

func TestHandleLeaveCell(t *testing.T) {
	t.Run("Left", func(t *testing.T) {
		mockCell := new(MockCellService)
		mockCell.On("Leave", mock.Anything, int64(7)).Return(nil)

		body, _ := json.Marshal(LeaveCellRequest{PlayerID: 7})
		req := httptest.NewRequest("POST", "/api/v1/cell/leave", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		NewCellHandler(mockCell).HandleLeave(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "left")
		mockCell.AssertExpectations(t)
	})

	t.Run("Not a member", func(t *testing.T) {
		mockCell := new(MockCellService)
		mockCell.On("Leave", mock.Anything, int64(7)).Return(domain.ErrNotInCell)

		body, _ := json.Marshal(LeaveCellRequest{PlayerID: 7})
		req := httptest.NewRequest("POST", "/api/v1/cell/leave", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		NewCellHandler(mockCell).HandleLeave(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgNotInCellError)
	})
}

func TestHandleViewCell(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockCell := new(MockCellService)
		mockCell.On("View", mock.Anything, int64(42)).Return(testCellView(), nil)

		req := httptest.NewRequest("GET", "/api/v1/cell?player_id=42", nil)
		rec := httptest.NewRecorder()

		NewCellHandler(mockCell).HandleView(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Night Watch"`)
		mockCell.AssertExpectations(t)
	})

	t.Run("No membership", func(t *testing.T) {
		mockCell := new(MockCellService)
		mockCell.On("View", mock.Anything, int64(42)).Return(nil, domain.ErrNotInCell)

		req := httptest.NewRequest("GET", "/api/v1/cell?player_id=42", nil)
		rec := httptest.NewRecorder()

		NewCellHandler(mockCell).HandleView(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleHireInformant(t *testing.T) {
	t.Run("Hired", func(t *testing.T) {
		view := testCellView()
		view.Cell.Informants = []domain.Informant{{ID: "inf-1", Name: "Viktor", HireCost: 1000000}}

		mockCell := new(MockCellService)
		mockCell.On("HireInformant", mock.Anything, int64(42), "Viktor").Return(view, nil)

		body, _ := json.Marshal(HireInformantRequest{PlayerID: 42, Name: "Viktor"})
		req := httptest.NewRequest("POST", "/api/v1/cell/informant", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		NewCellHandler(mockCell).HandleHireInformant(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Viktor"`)
		mockCell.AssertExpectations(t)
	})

	t.Run("Cell bank cannot afford", func(t *testing.T) {
		mockCell := new(MockCellService)
		mockCell.On("HireInformant", mock.Anything, int64(42), "Viktor").
			Return(nil, domain.ErrInsufficientFunds)

		body, _ := json.Marshal(HireInformantRequest{PlayerID: 42, Name: "Viktor"})
		req := httptest.NewRequest("POST", "/api/v1/cell/informant", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		NewCellHandler(mockCell).HandleHireInformant(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgNotEnoughCoinsError)
	})
}
