package domain

// RawCatalogItem represents one record as returned by the Naver shopping API.
// Price fields arrive as strings and the title carries <b> emphasis markup.
type RawCatalogItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Image     string `json:"image"`
	LPrice    string `json:"lprice"`
	HPrice    string `json:"hprice"`
	MallName  string `json:"mallName"`
	ProductID string `json:"productId"`
	Brand     string `json:"brand"`
	Maker     string `json:"maker"`
	Category1 string `json:"category1"`
	Category2 string `json:"category2"`
	Category3 string `json:"category3"`
	Category4 string `json:"category4"`
}

// CatalogSearchResponse is the upstream search payload for one page.
type CatalogSearchResponse struct {
	Total   int              `json:"total"`
	Start   int              `json:"start"`
	Display int              `json:"display"`
	Items   []RawCatalogItem `json:"items"`
}

// Item is the normalized record used throughout the search pipeline.
// Link acts as the natural identifier for deduplication. LPrice == 0 means
// "no price" and is always excluded from price-range matching.
type Item struct {
	Title     string `json:"title"`               // markup-bearing, for display
	TitleText string `json:"titleText"`           // markup-stripped, for keyword matching
	LPrice    int    `json:"lprice"`
	HPrice    int    `json:"hprice"`
	MallName  string `json:"mallName"`
	Link      string `json:"link"`
	Image     string `json:"image,omitempty"`
	ProductID string `json:"productId,omitempty"`
	Brand     string `json:"brand,omitempty"`
	Maker     string `json:"maker,omitempty"`
	Category1 string `json:"category1,omitempty"`
	Category2 string `json:"category2,omitempty"`
	Category3 string `json:"category3,omitempty"`
	Category4 string `json:"category4,omitempty"`
}

// SearchFilters is the constraint set for one search request.
// MinPrice/MaxPrice are never altered by relaxation.
type SearchFilters struct {
	MinPrice    *int     `json:"minPrice"`
	MaxPrice    *int     `json:"maxPrice"`
	Exclude     []string `json:"exclude"`
	FilterNoise bool     `json:"filterNoise"`
	Pages       int      `json:"pages"`
	Sort        string   `json:"sort"`
}

// RelaxationStep identifies one fallback action taken when strict filtering
// produced zero results.
type RelaxationStep string

const (
	RelaxDropFilterNoise RelaxationStep = "dropFilterNoise"
	RelaxDropExclude     RelaxationStep = "dropExclude"
	RelaxReducePages     RelaxationStep = "reducePages"
)

// AppliedFilters is a snapshot of the constraint values actually enforced in
// the terminal relaxation round.
type AppliedFilters struct {
	MinPrice    *int     `json:"minPrice"`
	MaxPrice    *int     `json:"maxPrice"`
	Exclude     []string `json:"exclude"`
	FilterNoise bool     `json:"filterNoise"`
	Pages       int      `json:"pages"`
	Sort        string   `json:"sort"`
}

// PriceGroup is a rank-ordered band of items sharing an identical price.
type PriceGroup struct {
	Price          int    `json:"price"`
	Count          int    `json:"count"`
	Items          []Item `json:"items"`
	Representative *Item  `json:"representative"`
}

// PriceBandSummary holds weighted statistics over the top-ranked price bands,
// not over the full result set.
type PriceBandSummary struct {
	MinPrice    int `json:"minPrice"`
	MaxPrice    int `json:"maxPrice"`
	AvgPrice    int `json:"avgPrice"`
	MedianPrice int `json:"medianPrice"`
}

// SearchResult is the full outcome of one search request.
type SearchResult struct {
	Items             []Item            `json:"items"`
	Top1              *Item             `json:"top1"`
	PriceGroups       []PriceGroup      `json:"priceGroups"`
	Summary           *PriceBandSummary `json:"summary"`
	TotalCandidates   int               `json:"totalCandidates"`
	TotalReported     int               `json:"totalReported"`
	Relaxed           bool              `json:"relaxed"`
	RelaxationLog     []RelaxationStep  `json:"relaxationLog"`
	Applied           AppliedFilters    `json:"appliedFilters"`
	ExcludedByKeyword int               `json:"excludedByKeyword"`
}

// RefineResult is the outcome of a client-side refinement pass. It carries
// the same derived shapes as SearchResult but never touches the upstream.
type RefineResult struct {
	Items           []Item            `json:"items"`
	Top1            *Item             `json:"top1"`
	PriceGroups     []PriceGroup      `json:"priceGroups"`
	Summary         *PriceBandSummary `json:"summary"`
	TotalCandidates int               `json:"totalCandidates"`
}
