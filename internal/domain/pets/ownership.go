package pets

// IndexOf busca un gato por id en la colección cargada. -1 si no está.
func IndexOf(cats []Cat, id string) int {
	for i, c := range cats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// OwnedBy indica si el gato pertenece a userID.
func OwnedBy(c Cat, userID string) bool {
	return userID != "" && c.UserID == userID
}

// IDs devuelve los ids en el mismo orden, para filtros "in".
func IDs(cats []Cat) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.ID)
	}
	return out
}
