package healthlogs

import "sort"

// ForCat filtra los registros de un gato, opcionalmente por categoría.
func ForCat(entries []Entry, catID string, categories ...Category) []Entry {
	out := make([]Entry, 0)
	for _, e := range entries {
		if e.CatID != catID {
			continue
		}
		if len(categories) > 0 && !containsCategory(categories, e.Category) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SortByVisitDate ordena ascendente por fecha de visita (estable).
func SortByVisitDate(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].VisitDate.Before(entries[j].VisitDate)
	})
}

func containsCategory(list []Category, c Category) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}
