package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jerikareyna/modasnansi-backend-main/app/apperr"
	"github.com/jerikareyna/modasnansi-backend-main/app/query"
	"github.com/jerikareyna/modasnansi-backend-main/app/respond"
	"github.com/jerikareyna/modasnansi-backend-main/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// --- Mock Service ---

type MockProductService struct {
	SourceProducts []models.Product
	Err            error

	// Fields to capture call arguments
	lastCalledFilters models.ProductFilters
	lastCalledParams  query.Params
	lastCalledID      uint
	lastCreate        CreateInput
	lastUpdate        UpdateInput
}

func (m *MockProductService) List(ctx context.Context, filters models.ProductFilters, params query.Params) (query.Result[models.Product], error) {
	m.lastCalledFilters = filters
	m.lastCalledParams = params

	if m.Err != nil {
		return query.Result[models.Product]{}, m.Err
	}

	// Simulate filtering
	var filteredProducts []models.Product
	for _, p := range m.SourceProducts {
		match := true
		if filters.CategoryName != "" && !strings.Contains(p.Category.Name, filters.CategoryName) {
			match = false
		}
		if filters.Price != nil && !p.Price.Equal(*filters.Price) {
			match = false
		}
		if match {
			filteredProducts = append(filteredProducts, p)
		}
	}

	total := int64(len(filteredProducts))

	// Simulate pagination
	start := (params.Page - 1) * params.Limit
	if start > len(filteredProducts) {
		start = len(filteredProducts)
	}
	end := start + params.Limit
	if end > len(filteredProducts) {
		end = len(filteredProducts)
	}

	return query.Result[models.Product]{
		Data:       filteredProducts[start:end],
		Pagination: query.NewPagination(total, params.Page, params.Limit),
	}, nil
}

func (m *MockProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	m.lastCalledID = id

	if m.Err != nil {
		return nil, m.Err
	}

	for _, p := range m.SourceProducts {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, apperr.NotFound("product %d not found", id)
}

func (m *MockProductService) Create(ctx context.Context, in CreateInput) (*models.Product, error) {
	m.lastCreate = in
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.Product{ID: 1, Code: in.Code, Name: in.Name, Price: in.Price}, nil
}

func (m *MockProductService) Update(ctx context.Context, id uint, in UpdateInput) (*models.Product, error) {
	m.lastCalledID = id
	m.lastUpdate = in
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.Product{ID: id}, nil
}

func (m *MockProductService) Delete(ctx context.Context, id uint) error {
	m.lastCalledID = id
	return m.Err
}

// --- Helpers ---

func newTestProduct(id uint, code, categoryName string, price float64) models.Product {
	return models.Product{
		ID:    id,
		Code:  code,
		Name:  "Product " + code,
		Price: decimal.NewFromFloat(price),
		Category: models.Category{
			ID:   id,
			Name: categoryName,
		},
	}
}

// --- Tests ---

func TestHandleGet(t *testing.T) {
	allMockProducts := []models.Product{
		newTestProduct(1, "PROD001", "SHOES", 19.99),
		newTestProduct(2, "PROD002", "CLOTHING", 24.99),
		newTestProduct(3, "PROD003", "ACCESSORIES", 10.00),
		newTestProduct(4, "PROD004", "CLOTHING", 95.50),
	}

	testCases := []struct {
		name               string
		url                string
		mockRepoSetup      func() *MockProductService
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCalls     func(t *testing.T, repo *MockProductService)
	}{
		{
			name: "Success with default pagination",
			url:  "/products",
			mockRepoSetup: func() *MockProductService {
				return &MockProductService{
					SourceProducts: allMockProducts,
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, int64(4), resp.Pagination.TotalItems)
				assert.Equal(t, 1, resp.Pagination.TotalPages)
				assert.Len(t, resp.Data, 4)
				assert.Equal(t, "PROD001", resp.Data[0].Code)
				assert.Equal(t, 19.99, resp.Data[0].Price)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductService) {
				assert.Equal(t, 1, repo.lastCalledParams.Page, "Expected default page 1")
				assert.Equal(t, 10, repo.lastCalledParams.Limit, "Expected default limit 10")
				assert.Empty(t, repo.lastCalledFilters.CategoryName)
				assert.Nil(t, repo.lastCalledFilters.Price)
			},
		},
		{
			name: "Success with custom pagination",
			url:  "/products?page=2&limit=2",
			mockRepoSetup: func() *MockProductService {
				return &MockProductService{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, int64(4), resp.Pagination.TotalItems)
				assert.Equal(t, 2, resp.Pagination.TotalPages)
				assert.Equal(t, 2, resp.Pagination.CurrentPage)
				assert.Len(t, resp.Data, 2)
				assert.Equal(t, "PROD003", resp.Data[0].Code)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductService) {
				assert.Equal(t, 2, repo.lastCalledParams.Page)
				assert.Equal(t, 2, repo.lastCalledParams.Limit)
			},
		},
		{
			name: "Pagination with out-of-bounds values",
			url:  "/products?page=-10&limit=200",
			mockRepoSetup: func() *MockProductService {
				return &MockProductService{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockProductService) {
				assert.Equal(t, 1, repo.lastCalledParams.Page, "Page should be clamped to 1")
				assert.Equal(t, 100, repo.lastCalledParams.Limit, "Limit should be clamped to 100")
			},
		},
		{
			name: "Pagination with lower bound limit",
			url:  "/products?limit=0",
			mockRepoSetup: func() *MockProductService {
				return &MockProductService{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockProductService) {
				assert.Equal(t, 1, repo.lastCalledParams.Limit, "Limit should be clamped to 1")
			},
		},
		{
			name: "Filter by category name",
			url:  "/products?category_name=CLOTH",
			mockRepoSetup: func() *MockProductService {
				return &MockProductService{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, int64(2), resp.Pagination.TotalItems)
				assert.Len(t, resp.Data, 2)
				assert.Equal(t, "PROD002", resp.Data[0].Code)
				assert.Equal(t, "PROD004", resp.Data[1].Code)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductService) {
				assert.Equal(t, "CLOTH", repo.lastCalledFilters.CategoryName)
				assert.Nil(t, repo.lastCalledFilters.Price)
			},
		},
		{
			name: "Filter by exact price",
			url:  "/products?price=10.00",
			mockRepoSetup: func() *MockProductService {
				return &MockProductService{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp.Data, 1)
				assert.Equal(t, "PROD003", resp.Data[0].Code)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductService) {
				if assert.NotNil(t, repo.lastCalledFilters.Price) {
					assert.True(t, decimal.NewFromInt(10).Equal(*repo.lastCalledFilters.Price))
				}
			},
		},
		{
			name: "Unparsable price is ignored",
			url:  "/products?price=cheap",
			mockRepoSetup: func() *MockProductService {
				return &MockProductService{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockProductService) {
				assert.Nil(t, repo.lastCalledFilters.Price)
			},
		},
		{
			name: "All filters and sorting are forwarded",
			url:  "/products?code=P&name=Shirt&description=cotton&genre=UNISEX&brand_name=ACME&target_audience_name=KIDS&education_level_name=PRIMARY&size_name=M&sortBy=price&sortOrder=asc",
			mockRepoSetup: func() *MockProductService {
				return &MockProductService{}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockProductService) {
				assert.Equal(t, models.ProductFilters{
					Code:               "P",
					Name:               "Shirt",
					Description:        "cotton",
					Genre:              "UNISEX",
					BrandName:          "ACME",
					TargetAudienceName: "KIDS",
					EducationLevelName: "PRIMARY",
					SizeName:           "M",
				}, repo.lastCalledFilters)
				assert.Equal(t, "price", repo.lastCalledParams.SortBy)
				assert.Equal(t, "asc", repo.lastCalledParams.SortOrder)
			},
		},
		{
			name: "Empty result from service",
			url:  "/products?category_name=nonexistent",
			mockRepoSetup: func() *MockProductService {
				return &MockProductService{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, int64(0), resp.Pagination.TotalItems)
				assert.Len(t, resp.Data, 0)
			},
		},
		{
			name: "Invalid sort key",
			url:  "/products?sortBy=color",
			mockRepoSetup: func() *MockProductService {
				return &MockProductService{Err: apperr.BadRequest("cannot sort products by \"color\"")}
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name: "Service error",
			url:  "/products",
			mockRepoSetup: func() *MockProductService {
				return &MockProductService{Err: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp respond.ErrorBody
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "unexpected error: db down", errResp.Error)
				assert.Equal(t, "/products", errResp.Path)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewCatalogHandler(mockRepo, query.DefaultPaging)
			req := httptest.NewRequest("GET", tc.url, nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGet(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkRepoCalls != nil {
				tc.checkRepoCalls(t, mockRepo)
			}
		})
	}
}
