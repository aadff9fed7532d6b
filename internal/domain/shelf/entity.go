package shelf

// Shelf 书架实体
// 上游数据的id字段不统一（id / _id），在构造时统一为ID
type Shelf struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// ResolveID 选择规范id
// 顺序：id字段优先，其次旧的_id字段；都为空时返回空串（调用方需丢弃该条目）
func ResolveID(canonical, legacy string) string {
	if canonical != "" {
		return canonical
	}
	return legacy
}

// displayNames 书架展示名称（按页内位置循环分配）
var displayNames = [...]struct {
	name        string
	description string
}{
	{"Fiction", "Romans et littérature contemporaine"},
	{"Non-Fiction", "Essais, biographies et documentaires"},
	{"Technique", "Livres de programmation et informatique"},
	{"Sciences", "Ouvrages scientifiques et recherche"},
	{"Histoire", "Livres d'histoire et civilisations"},
	{"Philosophie", "Réflexions et pensées philosophiques"},
	{"Art & Culture", "Beaux-arts et culture générale"},
	{"Développement Personnel", "Croissance personnelle et bien-être"},
}

// DisplayName 返回页内第index个书架的展示名称和描述
func DisplayName(index int) (name, description string) {
	if index < 0 {
		index = -index
	}
	d := displayNames[index%len(displayNames)]
	return d.name, d.description
}
