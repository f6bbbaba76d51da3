package api

// Endpoint groups of the SPOS backend. All collection endpoints use a
// trailing slash; ids are appended by join.
const (
	EndpointLogin      = "/api/auth/login-admin/"
	EndpointCheckToken = "/api/auth/check-token/"

	EndpointCash         = "/api/cashes/"
	EndpointCashClose    = "/api/cashes/close/"
	EndpointCashValidate = "/api/cashes/validate/"

	EndpointSales      = "/api/sales/"
	EndpointProducts   = "/api/products/"
	EndpointCustomers  = "/api/customers/"
	EndpointCategories = "/api/categories/"
)
