package entities

// Identified is implemented by every stored entity.
type Identified interface {
	GetID() uint
}

func (e *Category) GetID() uint { return e.ID }
func (e *Country) GetID() uint { return e.ID }
func (e *Level) GetID() uint { return e.ID }
func (e *Scholarship) GetID() uint { return e.ID }
func (e *Post) GetID() uint { return e.ID }
func (e *Menu) GetID() uint { return e.ID }
func (e *MenuItem) GetID() uint { return e.ID }
func (e *Media) GetID() uint { return e.ID }
func (e *SeoSetting) GetID() uint { return e.ID }
func (e *SiteSettings) GetID() uint { return e.ID }
func (e *User) GetID() uint { return e.ID }
func (e *Course) GetID() uint { return e.ID }
func (e *Section) GetID() uint { return e.ID }
func (e *Lesson) GetID() uint { return e.ID }
func (e *Enrollment) GetID() uint { return e.ID }
func (e *LessonProgress) GetID() uint { return e.ID }
func (e *Certificate) GetID() uint { return e.ID }
func (e *AuditEvent) GetID() uint { return e.ID }
