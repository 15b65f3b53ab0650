package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleItem struct {
	Quantity int `json:"quantity" binding:"gt=0"`
}

type sampleRequest struct {
	Email    string       `json:"email" binding:"required,email"`
	Password string       `json:"password" binding:"required,pwd"`
	Status   string       `json:"status" binding:"omitempty,product_status"`
	Items    []sampleItem `json:"items" binding:"required,min=1,dive"`
}

func TestToDetailsValidationErrors(t *testing.T) {
	err := Struct(sampleRequest{
		Email:    "nope",
		Password: "123",
		Status:   "SOLD",
		Items:    []sampleItem{{Quantity: 0}},
	})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be between 6 and 72 characters long", details["password"])
	assert.Equal(t, "must be one of: ACTIVE, DRAFT, ARCHIVED", details["status"])
	assert.Equal(t, "must be greater than 0", details["items[0].quantity"])
}

func TestToDetailsEmptySlice(t *testing.T) {
	err := Struct(sampleRequest{Email: "a@b.com", Password: "secret1", Items: []sampleItem{}})
	require.Error(t, err)
	assert.Equal(t, "must contain at least 1 item(s)", ToDetails(err)["items"])
}

func TestToDetailsJSONErrors(t *testing.T) {
	var req sampleRequest
	err := json.NewDecoder(strings.NewReader(`{"email": 5}`)).Decode(&req)
	require.Error(t, err)
	assert.Equal(t, "must be a string", ToDetails(err)["email"])

	err = json.NewDecoder(strings.NewReader(`{"email":`)).Decode(&req)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestPasswordUpperBound(t *testing.T) {
	ok := sampleRequest{Email: "a@b.com", Password: strings.Repeat("a", 72), Items: []sampleItem{{Quantity: 1}}}
	assert.NoError(t, Struct(ok))

	long := ok
	long.Password = strings.Repeat("a", 80)
	err := Struct(long)
	require.Error(t, err)
	assert.Equal(t, "must be between 6 and 72 characters long", ToDetails(err)["password"])
}

type priceRequest struct {
	Price *float64 `json:"price" binding:"required,gt=0,cents"`
}

func TestCentsPrecision(t *testing.T) {
	cases := []struct {
		price float64
		ok    bool
	}{
		{19.99, true},
		{20, true},
		{0.01, true},
		{1234.5, true},
		{0.001, false},
		{19.999, false},
	}
	for _, tc := range cases {
		price := tc.price
		err := Struct(priceRequest{Price: &price})
		if tc.ok {
			assert.NoError(t, err, "%v", tc.price)
			continue
		}
		require.Error(t, err, "%v", tc.price)
		assert.Equal(t, "must have at most 2 decimal places", ToDetails(err)["price"])
	}
}

func TestToDetailsNil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
