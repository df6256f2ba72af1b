package issue

// ResponsiblePerson - сотрудник из фиксированного справочника, в базе не хранится.
type ResponsiblePerson struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

var people = []ResponsiblePerson{
	{ID: "1", Name: "Alexander Ivanov", Avatar: "https://picsum.photos/id/1005/50/50"},
	{ID: "2", Name: "Elena Petrova", Avatar: "https://picsum.photos/id/1011/50/50"},
	{ID: "3", Name: "Dmitry Smirnov", Avatar: "https://picsum.photos/id/1012/50/50"},
	{ID: "4", Name: "Maria Sidorova", Avatar: "https://picsum.photos/id/1025/50/50"},
}

// People возвращает копию справочника.
func People() []ResponsiblePerson {
	out := make([]ResponsiblePerson, len(people))
	copy(out, people)
	return out
}

// DefaultResponsibleID - сотрудник, выбранный в форме по умолчанию.
func DefaultResponsibleID() string {
	return people[0].ID
}

// FindPerson ищет сотрудника по id. Неизвестные ссылки допустимы.
func FindPerson(id string) (ResponsiblePerson, bool) {
	for _, p := range people {
		if p.ID == id {
			return p, true
		}
	}
	return ResponsiblePerson{}, false
}
