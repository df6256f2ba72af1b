package issue

import "time"

// Issue - запись о логистической проблеме.
type Issue struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	ResponsibleID string    `json:"responsible_id"`
	AIAnalysis    *string   `json:"ai_analysis,omitempty"`
}

// HasAnalysis сообщает, есть ли у проблемы сохраненный совет AI.
func (i Issue) HasAnalysis() bool {
	return i.AIAnalysis != nil && *i.AIAnalysis != ""
}

// Analysis возвращает совет AI или пустую строку.
func (i Issue) Analysis() string {
	if i.AIAnalysis == nil {
		return ""
	}
	return *i.AIAnalysis
}

// NewIssue - данные для вставки, идентификатор назначает хранилище.
type NewIssue struct {
	Title         string    `json:"title" minLength:"1" doc:"Заголовок проблемы"`
	Description   string    `json:"description" minLength:"1" doc:"Описание"`
	Status        Status    `json:"status,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	ResponsibleID string    `json:"responsible_id" doc:"Ответственный сотрудник"`
}

// Patch - частичное обновление. Текстовые поля после создания не меняются.
type Patch struct {
	Status        *Status `json:"status,omitempty"`
	ResponsibleID *string `json:"responsible_id,omitempty"`
	AIAnalysis    *string `json:"ai_analysis,omitempty"`
}

func (p Patch) Empty() bool {
	return p.Status == nil && p.ResponsibleID == nil && p.AIAnalysis == nil
}

// Apply переносит заданные поля патча на копию проблемы.
func (p Patch) Apply(i Issue) Issue {
	if p.Status != nil {
		i.Status = *p.Status
	}
	if p.ResponsibleID != nil {
		i.ResponsibleID = *p.ResponsibleID
	}
	if p.AIAnalysis != nil {
		v := *p.AIAnalysis
		i.AIAnalysis = &v
	}
	return i
}

func StatusPatch(s Status) Patch {
	return Patch{Status: &s}
}

func ResponsiblePatch(id string) Patch {
	return Patch{ResponsibleID: &id}
}

func AnalysisPatch(text string) Patch {
	return Patch{AIAnalysis: &text}
}
