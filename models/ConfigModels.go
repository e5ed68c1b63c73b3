package models

// PlatformConfig is the nested configuration document served to the admin console.
// Rate fields are stored as fractions (0-1); the console displays them as
// percentages, so handlers convert with services.PercentFromRate/RateFromPercent.
type PlatformConfig struct {
	Business BusinessConfig `json:"business"`
	Media    MediaConfig    `json:"media"`
	Design   DesignConfig   `json:"design"`
	Order    OrderConfig    `json:"order"`
	Report   ReportConfig   `json:"report"`
}

type BusinessConfig struct {
	TaxRate     float64 `json:"taxRate" example:"0.1"`
	ServiceRate float64 `json:"serviceRate" example:"0.02"`
	MinPay      int64   `json:"minPay" example:"10000"`
	MaxPay      int64   `json:"maxPay" example:"200000000"`
}

type MediaConfig struct {
	MaxImgSize      int64    `json:"maxImgSize" example:"5242880"`
	MaxVideoSize    int64    `json:"maxVideoSize" example:"52428800"`
	ImgFormat       []string `json:"imgFormat"`
	VideoFormat     []string `json:"videoFormat"`
	MaxReferenceImg int      `json:"maxReferenceImg" example:"4"`
	MaxFeedbackImg  int      `json:"maxFeedbackImg" example:"4"`
}

type DesignConfig struct {
	Positions         []string `json:"positions"`
	IllustrationImage string   `json:"illustrationImage"`
}

type OrderConfig struct {
	MinUniformQty        int `json:"minUniformQty" example:"50"`
	MaxAssignedMilestone int `json:"maxAssignedMilestone" example:"5"`
}

type ReportConfig struct {
	MaxAppealDay       int      `json:"maxAppealDay" example:"3"`
	MaxDisbursementDay int      `json:"maxDisbursementDay" example:"7"`
	SeverityLevels     []string `json:"severityLevels"`
}

// UpdateConfigRequest is the PUT /api/system/config body. The console submits
// the document partitioned per section; nil sections are left untouched.
// Rate fields arrive as percentages (the values the user last edited) and are
// re-derived into fractions on save.
type UpdateConfigRequest struct {
	FabricDataList []FabricData         `json:"fabricDataList,omitempty"`
	BusinessData   *BusinessDataRequest `json:"businessData,omitempty"`
	MediaData      *MediaConfig         `json:"mediaData,omitempty"`
	DesignData     *DesignConfig        `json:"designData,omitempty"`
	OrderData      *OrderConfig         `json:"orderData,omitempty"`
	ReportData     *ReportConfig        `json:"reportData,omitempty"`
}

// BusinessDataRequest carries business rates as whole percentages.
type BusinessDataRequest struct {
	TaxRate     float64 `json:"taxRate" example:"10"`
	ServiceRate float64 `json:"serviceRate" example:"2"`
	MinPay      int64   `json:"minPay" example:"10000"`
	MaxPay      int64   `json:"maxPay" example:"200000000"`
}

// FabricData is the fabric definition shape carried inside a config update.
type FabricData struct {
	Name        string `json:"name" binding:"required" example:"Kate Silk"`
	Description string `json:"description" example:"Breathable blend for shirts"`
	ForShirt    bool   `json:"forShirt"`
	ForPants    bool   `json:"forPants"`
	ForSkirt    bool   `json:"forSkirt"`
	ForRegular  bool   `json:"forRegular"`
	ForPE       bool   `json:"forPE"`
}
