package utils

import (
	"bytes"
	"testing"

	"github.com/deppfellow/jobly/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSONJobShapes(t *testing.T) {
	equity := decimal.RequireFromString("0.05")
	name := "C1"

	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, []model.JobListing{{
		Job:         model.Job{ID: 1, Title: "Engineer", Equity: &equity, CompanyHandle: "c1"},
		CompanyName: &name,
	}}))

	assert.JSONEq(t, `[{"id":1,"title":"Engineer","salary":null,"equity":"0.05","companyHandle":"c1","companyName":"C1"}]`, buf.String())

	buf.Reset()
	require.NoError(t, PrintJSON(&buf, model.JobDetail{
		ID:      1,
		Title:   "Engineer",
		Company: &model.Company{Handle: "c1", Name: "C1", Description: "Desc1"},
	}))

	assert.JSONEq(t, `{"id":1,"title":"Engineer","salary":null,"equity":null,
		"company":{"handle":"c1","name":"C1","description":"Desc1","employeeCount":null,"logoUrl":null}}`, buf.String())
	assert.NotContains(t, buf.String(), "companyHandle")
}

func TestPrintJSONError(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, PrintJSON(&buf, make(chan int)))
	assert.Empty(t, buf.String())
}
