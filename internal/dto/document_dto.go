package dto

type GenerateDocumentRequest struct {
	Brigade       string `json:"brigade"       validate:"required,max=200"`
	UnitName      string `json:"unitName"      validate:"required,max=200"`
	FinancialYear string `json:"financialYear" validate:"required,max=20"`
	BrigadeName   string `json:"brigadeName"   validate:"required,max=200"`
	LetterNo      string `json:"letterNo"      validate:"required,max=100"`
	Date          string `json:"date"          validate:"required"`
	Remarks       string `json:"remarks"       validate:"max=2000"`
}

type DocumentHealthResponse struct {
	Template      string `json:"template"`
	TemplateOK    bool   `json:"templateOk"`
	RendererState string `json:"rendererState"`
}
