package model

// QuoteStatus represents the lifecycle state of a quotation.
type QuoteStatus string

const (
	QuoteStatusGenerated QuoteStatus = "generated"
	QuoteStatusReviewed  QuoteStatus = "reviewed"
	QuoteStatusApproved  QuoteStatus = "approved"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusFinalized QuoteStatus = "finalized"
)

// DrawingStatus represents the processing state of an uploaded drawing.
type DrawingStatus string

const (
	DrawingStatusUploaded   DrawingStatus = "uploaded"
	DrawingStatusProcessing DrawingStatus = "processing"
	DrawingStatusAnalyzed   DrawingStatus = "analyzed"
	DrawingStatusFailed     DrawingStatus = "failed"
)

// Dimensions holds the three-axis extent of a part.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// DrawingSpecs holds the specifications the backend extracted from a
// drawing. Immutable once attached to a quote.
type DrawingSpecs struct {
	Material             string     `json:"material"`
	MaterialQuantity     float64    `json:"materialQuantity"`
	MaterialUnit         string     `json:"materialUnit"`
	Dimensions           Dimensions `json:"dimensions"`
	ManufacturingProcess []string   `json:"manufacturingProcess"`
	Complexity           int        `json:"complexity"` // 1-10
	SpecialRequirements  []string   `json:"specialRequirements"`
	Confidence           float64    `json:"confidence"` // 0-100
}

// MaterialCost is the material line of a cost breakdown.
type MaterialCost struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unitCost"`
	TotalCost   float64 `json:"totalCost"`
}

// LaborCost is the labor line of a cost breakdown.
type LaborCost struct {
	Hours      float64 `json:"hours"`
	HourlyRate float64 `json:"hourlyRate"`
	TotalCost  float64 `json:"totalCost"`
}

// OverheadCost is the overhead line of a cost breakdown.
type OverheadCost struct {
	Percentage float64 `json:"percentage"`
	TotalCost  float64 `json:"totalCost"`
}

// CostBreakdown itemizes a quote's base cost. The server guarantees
// BaseCost = Material.TotalCost + Labor.TotalCost + Overhead.TotalCost;
// the client renders it as-is.
type CostBreakdown struct {
	Material MaterialCost `json:"material"`
	Labor    LaborCost    `json:"labor"`
	Overhead OverheadCost `json:"overhead"`
	BaseCost float64      `json:"baseCost"`
}

// MarketAdjustment is the multiplicative correction applied to the base
// cost to reflect external market pricing.
type MarketAdjustment struct {
	Factor     float64 `json:"factor"` // e.g. 1.05 for a 5% increase
	Reason     string  `json:"reason"`
	DataSource string  `json:"dataSource"`
}

// QuotationResult is a priced quotation derived from a drawing.
// FinalPrice = BaseCost * MarketAdjustment.Factor, computed server-side.
type QuotationResult struct {
	ID               string           `json:"_id"`
	DrawingID        string           `json:"drawingId"`
	ExtractedSpecs   DrawingSpecs     `json:"extractedSpecs"`
	Breakdown        CostBreakdown    `json:"breakdown"`
	MarketAdjustment MarketAdjustment `json:"marketAdjustment"`
	BaseCost         float64          `json:"baseCost"`
	FinalPrice       float64          `json:"finalPrice"`
	Currency         string           `json:"currency"`
	ConfidenceScore  float64          `json:"confidenceScore"` // 0-100
	Status           QuoteStatus      `json:"status"`
	CreatedAt        string           `json:"createdAt"`
	UpdatedAt        string           `json:"updatedAt"`
	Analysis         string           `json:"analysis,omitempty"`
	MaterialCost     float64          `json:"materialCost"`
	LaborCost        float64          `json:"laborCost"`
	OverheadCost     float64          `json:"overheadCost"`
}

// UploadResult is the payload returned from a single-drawing upload.
type UploadResult struct {
	DrawingID        string           `json:"drawingId"`
	QuoteID          string           `json:"quoteId"`
	BaseCost         float64          `json:"baseCost"`
	MarketAdjustment MarketAdjustment `json:"marketAdjustment"`
	FinalPrice       float64          `json:"finalPrice"`
	ConfidenceScore  float64          `json:"confidenceScore"`
	Breakdown        CostBreakdown    `json:"breakdown"`
	ExtractedSpecs   DrawingSpecs     `json:"extractedSpecs"`
	Analysis         string           `json:"analysis"`
}

// Pagination is the offset-pagination metadata on list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
