package model

// ConditionTemplate is one entry of the fixed catalog of clinical condition
// templates a tooth record may reference.
type ConditionTemplate struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// ConditionTemplates is the fixed catalog. Descriptions are the product's
// Ukrainian UI strings.
var ConditionTemplates = []ConditionTemplate{
	{ID: "cavity", Description: "Карієс, що потребує лікування"},
	{ID: "filling", Description: "Наявна або необхідна пломба"},
	{ID: "crown", Description: "Встановлена або необхідна коронка"},
	{ID: "root-canal", Description: "Ендодонтичне лікування"},
	{ID: "extraction", Description: "Видалення зуба виконано або заплановано"},
	{ID: "implant", Description: "Дентальний імплант"},
	{ID: "bridge", Description: "Зубний міст"},
	{ID: "periodontal", Description: "Захворювання ясен або лікування"},
	{ID: "sensitivity", Description: "Підвищена чутливість зуба"},
	{ID: "fracture", Description: "Тріщина або скол зуба"},
	{ID: "missing", Description: "Відсутній зуб"},
	{ID: "healthy", Description: "Проблем не виявлено"},
}

// TemplateByID looks up a catalog entry.
func TemplateByID(id string) (ConditionTemplate, bool) {
	for _, t := range ConditionTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return ConditionTemplate{}, false
}
