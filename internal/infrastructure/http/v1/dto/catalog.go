package dto

import (
	"time"

	"pharmabill/internal/core/types"
)

// --- Organization ---

type OrganizationCreate struct {
	Name              string `json:"name" binding:"required"`
	LegalName         string `json:"legalName"`
	GSTIN             string `json:"gstin" binding:"required"`
	DrugLicenseNumber string `json:"drugLicenseNumber"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
}

type OrganizationUpdate struct {
	Name              string `json:"name" binding:"required"`
	LegalName         string `json:"legalName"`
	DrugLicenseNumber string `json:"drugLicenseNumber"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Version           int    `json:"version" binding:"required"`
}

// --- Product ---

type ProductCreate struct {
	Name                 string      `json:"name" binding:"required"`
	Code                 string      `json:"code"`
	HSNCode              string      `json:"hsnCode" binding:"required"`
	Description          string      `json:"description"`
	GSTRate              types.Money `json:"gstRate"`
	CessRate             types.Money `json:"cessRate"`
	UnitPrice            types.Money `json:"unitPrice"`
	UQC                  string      `json:"uqc"`
	Manufacturer         string      `json:"manufacturer"`
	PrescriptionRequired bool        `json:"prescriptionRequired"`
}

type ProductUpdate struct {
	Name                 string      `json:"name" binding:"required"`
	HSNCode              string      `json:"hsnCode" binding:"required"`
	Description          string      `json:"description"`
	GSTRate              types.Money `json:"gstRate"`
	CessRate             types.Money `json:"cessRate"`
	UnitPrice            types.Money `json:"unitPrice"`
	UQC                  string      `json:"uqc"`
	Manufacturer         string      `json:"manufacturer"`
	PrescriptionRequired bool        `json:"prescriptionRequired"`
	Version              int         `json:"version" binding:"required"`
}

type BatchCreate struct {
	BatchNumber   string      `json:"batchNumber" binding:"required"`
	ExpiryDate    *time.Time  `json:"expiryDate"`
	MRP           types.Money `json:"mrp"`
	PurchasePrice types.Money `json:"purchasePrice"`
	Quantity      types.Money `json:"quantity"`
}

// --- Customer ---

type CustomerCreate struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code"`
	GSTIN     string `json:"gstin"`
	StateCode string `json:"stateCode"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

type CustomerUpdate struct {
	Name      string `json:"name" binding:"required"`
	GSTIN     string `json:"gstin"`
	StateCode string `json:"stateCode"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Version   int    `json:"version" binding:"required"`
}

// --- Supplier ---

type SupplierCreate struct {
	Name              string `json:"name" binding:"required"`
	Code              string `json:"code"`
	GSTIN             string `json:"gstin"`
	StateCode         string `json:"stateCode"`
	DrugLicenseNumber string `json:"drugLicenseNumber"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Address           string `json:"address"`
}

type SupplierUpdate struct {
	Name              string `json:"name" binding:"required"`
	GSTIN             string `json:"gstin"`
	StateCode         string `json:"stateCode"`
	DrugLicenseNumber string `json:"drugLicenseNumber"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Address           string `json:"address"`
	Version           int    `json:"version" binding:"required"`
}
