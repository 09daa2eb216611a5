package nlp

import "sort"

// Skill categories used for tagging.
const (
	CategoryBackend  = "backend"
	CategoryFrontend = "frontend"
	CategoryDevOps   = "devops"
	CategoryData     = "data"
	CategoryMobile   = "mobile"
	CategoryOther    = "other"
)

// Catalog maps a canonical skill name to its category.
type Catalog map[string]string

// DefaultCatalog: небольшой словарь технологий для эвристического разбора CV.
var DefaultCatalog = Catalog{
	"Go":         CategoryBackend,
	"Java":       CategoryBackend,
	"Python":     CategoryBackend,
	"C#":         CategoryBackend,
	"C++":        CategoryBackend,
	"PHP":        CategoryBackend,
	"Ruby":       CategoryBackend,
	"Rust":       CategoryBackend,
	"Kotlin":     CategoryMobile,
	"Swift":      CategoryMobile,
	"Flutter":    CategoryMobile,
	"Node.js":    CategoryBackend,
	"Spring":     CategoryBackend,
	"Django":     CategoryBackend,
	"gRPC":       CategoryBackend,
	"REST API":   CategoryBackend,
	"GraphQL":    CategoryBackend,
	"JavaScript": CategoryFrontend,
	"TypeScript": CategoryFrontend,
	"React":      CategoryFrontend,
	"Vue":        CategoryFrontend,
	"Angular":    CategoryFrontend,
	"HTML":       CategoryFrontend,
	"CSS":        CategoryFrontend,
	"PostgreSQL": CategoryData,
	"MySQL":      CategoryData,
	"MongoDB":    CategoryData,
	"Redis":      CategoryData,
	"Kafka":      CategoryData,
	"RabbitMQ":   CategoryData,
	"SQL":        CategoryData,
	"Docker":     CategoryDevOps,
	"Kubernetes": CategoryDevOps,
	"Terraform":  CategoryDevOps,
	"AWS":        CategoryDevOps,
	"GCP":        CategoryDevOps,
	"Linux":      CategoryDevOps,
	"CI/CD":      CategoryDevOps,
}

// Match is a catalog skill found in a text.
type Match struct {
	Name     string
	Category string
	Hits     int
}

// Find returns catalog skills mentioned in text, sorted by name.
func (c Catalog) Find(text string) []Match {
	normalized := NormalizeText(text)
	var out []Match
	for name, category := range c {
		hits := 0
		for _, v := range SkillVariants(name) {
			hits += CountPhrase(normalized, v)
		}
		if hits > 0 {
			out = append(out, Match{Name: name, Category: category, Hits: hits})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CategoryOf returns the category of a skill, or CategoryOther when unknown.
func (c Catalog) CategoryOf(skill string) (string, string) {
	want := NormalizeSkill(skill)
	for name, category := range c {
		for _, v := range SkillVariants(name) {
			if v == want {
				return name, category
			}
		}
	}
	return skill, CategoryOther
}
