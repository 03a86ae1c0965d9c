// internal/workers/generation/fuse-business-data/evaluator.go
package fusebusinessdata

import (
	"strings"

	"sitegen-workers/internal/models"
)

// Source weights for the overall quality combination.
var sourceWeights = map[string]float64{
	models.SourceProfile:       0.35,
	models.SourcePlaces:        0.30,
	models.SourceSearchResults: 0.15,
	models.SourceUserAnswers:   0.20,
}

// scalarPrecedence is the field-resolution order when sources disagree.
// Inference from text sits below all of these and applies only to
// certifications, emergency availability and service hints.
var scalarPrecedence = []string{
	models.SourceUserAnswers,
	models.SourceProfile,
	models.SourcePlaces,
}

// listPrecedence governs which source's casing wins for deduplicated
// list entries.
var listPrecedence = []string{
	models.SourceUserAnswers,
	models.SourceProfile,
	models.SourcePlaces,
	models.SourceSearchResults,
}

var certificationKeywords = []string{"licensed", "insured", "certified", "bonded"}

var emergencyKeywords = []string{"24/7", "24 hour", "emergency", "storm"}

type checklistItem struct {
	weight  float64
	present func(r *models.SourceRecord) bool
}

// qualityChecklists holds the per-source expected-field checklists.
// Weights within each source sum to 1.
var qualityChecklists = map[string][]checklistItem{
	models.SourceProfile: {
		{0.25, func(r *models.SourceRecord) bool { return len(r.Services) > 0 }},
		{0.20, func(r *models.SourceRecord) bool { return len(r.Photos) > 0 }},
		{0.15, func(r *models.SourceRecord) bool { return hasText(r.Description) }},
		{0.10, func(r *models.SourceRecord) bool { return hasText(r.Name) }},
		{0.10, func(r *models.SourceRecord) bool { return hasText(r.Phone) }},
		{0.10, func(r *models.SourceRecord) bool { return hasText(r.Address) }},
		{0.05, func(r *models.SourceRecord) bool { return hasText(r.HoursText) }},
		{0.05, func(r *models.SourceRecord) bool { return hasText(r.Category) }},
	},
	models.SourcePlaces: {
		{0.30, func(r *models.SourceRecord) bool { return len(r.Reviews) > 0 }},
		{0.20, func(r *models.SourceRecord) bool { return r.Rating != nil && *r.Rating > 0 }},
		{0.20, func(r *models.SourceRecord) bool { return len(r.Photos) > 0 }},
		{0.15, func(r *models.SourceRecord) bool { return hasText(r.Address) }},
		{0.10, func(r *models.SourceRecord) bool { return hasText(r.Phone) }},
		{0.05, func(r *models.SourceRecord) bool { return hasText(r.Website) }},
	},
	models.SourceSearchResults: {
		{0.40, func(r *models.SourceRecord) bool { return len(r.Competitors) > 0 }},
		{0.30, func(r *models.SourceRecord) bool { return len(r.Keywords) > 0 }},
		{0.20, func(r *models.SourceRecord) bool { return len(r.PeopleAlsoAsk) > 0 }},
		{0.10, func(r *models.SourceRecord) bool { return hasText(r.MarketPosition) }},
	},
	models.SourceUserAnswers: {
		{0.25, func(r *models.SourceRecord) bool { return len(r.Confirmations) > 0 }},
		{0.20, func(r *models.SourceRecord) bool { return len(r.PhotoContexts) > 0 }},
		{0.20, func(r *models.SourceRecord) bool { return len(r.Differentiators) > 0 }},
		{0.15, func(r *models.SourceRecord) bool { return len(r.Specializations) > 0 }},
		{0.20, func(r *models.SourceRecord) bool { return hasText(r.UniqueValue) }},
	},
}

func hasText(p *string) bool {
	return p != nil && strings.TrimSpace(*p) != ""
}

// fuse merges the four source records into one DataInsights. Pure and
// total: any shape of input produces a valid (possibly low-quality)
// result.
func (h *Handler) fuse(set *models.SourceSet, industry string) models.DataInsights {
	fieldSources := make(map[string][]string)
	var confirmed models.ConfirmedFields

	confirmed.Name = resolveScalar(set, fieldSources, "name", func(r *models.SourceRecord) *string { return r.Name })
	confirmed.Description = resolveScalar(set, fieldSources, "description", func(r *models.SourceRecord) *string { return r.Description })
	confirmed.Category = resolveScalar(set, fieldSources, "category", func(r *models.SourceRecord) *string { return r.Category })
	confirmed.Phone = resolveScalar(set, fieldSources, "phone", func(r *models.SourceRecord) *string { return r.Phone })
	confirmed.Address = resolveScalar(set, fieldSources, "address", func(r *models.SourceRecord) *string { return r.Address })
	confirmed.Website = resolveScalar(set, fieldSources, "website", func(r *models.SourceRecord) *string { return r.Website })
	confirmed.Hours = resolveScalar(set, fieldSources, "hours", func(r *models.SourceRecord) *string { return r.HoursText })

	confirmed.Services = resolveList(set, fieldSources, "services", func(r *models.SourceRecord) []string { return r.Services })
	confirmed.Certifications = resolveList(set, fieldSources, "certifications", func(r *models.SourceRecord) []string { return r.Certifications })
	confirmed.ServiceAreas = resolveList(set, fieldSources, "serviceAreas", func(r *models.SourceRecord) []string { return r.ServiceAreas })

	confirmed.Photos = mergePhotos(set, fieldSources)
	confirmed.Reviews = set.Places.Reviews
	if len(confirmed.Reviews) > 0 {
		fieldSources["reviews"] = []string{models.SourcePlaces}
	}

	confirmed.Rating, confirmed.ReviewCount = resolveReviewAggregate(set, fieldSources)

	ua := &set.UserAnswers
	if hasText(ua.UniqueValue) {
		confirmed.UniqueValue = strings.TrimSpace(*ua.UniqueValue)
		fieldSources["uniqueValue"] = []string{models.SourceUserAnswers}
	}
	if len(ua.Differentiators) > 0 {
		confirmed.Differentiators = dedupeFold(ua.Differentiators)
		fieldSources["differentiators"] = []string{models.SourceUserAnswers}
	}
	if len(ua.Specializations) > 0 {
		confirmed.Specializations = dedupeFold(ua.Specializations)
		fieldSources["specializations"] = []string{models.SourceUserAnswers}
	}

	emergencyKnown := false
	if ua.Emergency != nil {
		confirmed.Emergency = *ua.Emergency
		emergencyKnown = true
		fieldSources["emergencyAvailability"] = []string{models.SourceUserAnswers}
	}

	// Inference tier: scan description and review text for certification,
	// emergency and service hints. Ranked below every explicit source.
	text := corpusText(set)
	if text != "" {
		confirmed.Certifications = h.inferCertifications(text, confirmed.Certifications, fieldSources)
		if !emergencyKnown && containsAny(text, emergencyKeywords) {
			confirmed.Emergency = true
			emergencyKnown = true
			fieldSources["emergencyAvailability"] = []string{models.SourceInferred}
		}
		confirmed.Services = h.inferServices(text, industry, confirmed.Services, fieldSources)
	}

	sourceQuality := make(map[string]float64, len(models.SourceNames))
	for _, name := range models.SourceNames {
		sourceQuality[name] = checklistScore(name, set.Record(name))
	}

	overall := 0.0
	for _, name := range models.SourceNames {
		overall += sourceWeights[name] * sourceQuality[name]
	}
	overall += h.config.CorroborationBonus * float64(countCorroborated(set))
	if overall > 1.0 {
		overall = 1.0
	}

	return models.DataInsights{
		Confirmed:      confirmed,
		FieldSources:   fieldSources,
		SourceQuality:  sourceQuality,
		OverallQuality: overall,
		MissingData:    h.missingData(&confirmed, set, emergencyKnown),
	}
}

// resolveScalar picks the first non-empty value in precedence order. A
// user confirmation keyed by field name outranks the typed field.
func resolveScalar(set *models.SourceSet, fieldSources map[string][]string, field string, get func(*models.SourceRecord) *string) string {
	if v, ok := set.UserAnswers.Confirmations[field]; ok && strings.TrimSpace(v) != "" {
		fieldSources[field] = []string{models.SourceUserAnswers}
		return strings.TrimSpace(v)
	}
	for _, src := range scalarPrecedence {
		if p := get(set.Record(src)); hasText(p) {
			fieldSources[field] = []string{src}
			return strings.TrimSpace(*p)
		}
	}
	return ""
}

// resolveList unions the field across sources with case-insensitive
// deduplication. Precedence only decides which casing is canonical.
func resolveList(set *models.SourceSet, fieldSources map[string][]string, field string, get func(*models.SourceRecord) []string) []string {
	var out []string
	seen := make(map[string]bool)
	var contributing []string
	for _, src := range listPrecedence {
		contributed := false
		for _, entry := range get(set.Record(src)) {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			key := strings.ToLower(entry)
			if seen[key] {
				contributed = true
				continue
			}
			seen[key] = true
			out = append(out, entry)
			contributed = true
		}
		if contributed {
			contributing = append(contributing, src)
		}
	}
	if len(contributing) > 0 {
		fieldSources[field] = contributing
	}
	return out
}

// mergePhotos unions photos across sources by URL and attaches
// user-supplied context labels.
func mergePhotos(set *models.SourceSet, fieldSources map[string][]string) []models.Photo {
	var out []models.Photo
	seen := make(map[string]bool)
	var contributing []string
	for _, src := range []string{models.SourceProfile, models.SourcePlaces} {
		contributed := false
		for _, photo := range set.Record(src).Photos {
			if photo.URL == "" || seen[photo.URL] {
				continue
			}
			seen[photo.URL] = true
			if ctx, ok := set.UserAnswers.PhotoContexts[photo.URL]; ok && ctx != "" {
				photo.Context = ctx
			}
			out = append(out, photo)
			contributed = true
		}
		if contributed {
			contributing = append(contributing, src)
		}
	}
	if len(set.UserAnswers.PhotoContexts) > 0 && len(out) > 0 {
		contributing = append(contributing, models.SourceUserAnswers)
	}
	if len(contributing) > 0 {
		fieldSources["photos"] = contributing
	}
	return out
}

func resolveReviewAggregate(set *models.SourceSet, fieldSources map[string][]string) (float64, int) {
	rating := 0.0
	count := 0
	for _, src := range []string{models.SourceProfile, models.SourcePlaces} {
		rec := set.Record(src)
		if rating == 0 && rec.Rating != nil && *rec.Rating > 0 {
			rating = *rec.Rating
			fieldSources["rating"] = []string{src}
		}
		if count == 0 && rec.ReviewCount != nil && *rec.ReviewCount > 0 {
			count = *rec.ReviewCount
			fieldSources["reviewCount"] = []string{src}
		}
	}
	if count == 0 && len(set.Places.Reviews) > 0 {
		count = len(set.Places.Reviews)
		fieldSources["reviewCount"] = []string{models.SourcePlaces}
	}
	return rating, count
}

// corpusText concatenates the free text every source provides, lowercased,
// for the inference tier.
func corpusText(set *models.SourceSet) string {
	var parts []string
	for _, name := range models.SourceNames {
		rec := set.Record(name)
		if hasText(rec.Description) {
			parts = append(parts, *rec.Description)
		}
		for _, review := range rec.Reviews {
			if review.Text != "" {
				parts = append(parts, review.Text)
			}
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func (h *Handler) inferCertifications(text string, existing []string, fieldSources map[string][]string) []string {
	present := make(map[string]bool, len(existing))
	for _, cert := range existing {
		present[strings.ToLower(cert)] = true
	}
	inferred := false
	out := existing
	for _, keyword := range certificationKeywords {
		if present[keyword] || !strings.Contains(text, keyword) {
			continue
		}
		out = append(out, strings.ToUpper(keyword[:1])+keyword[1:])
		present[keyword] = true
		inferred = true
	}
	if inferred {
		fieldSources["certifications"] = append(fieldSources["certifications"], models.SourceInferred)
	}
	return out
}

// inferServices matches the industry service catalogue against the text
// corpus. No catalogue (or unknown industry) means no hints.
func (h *Handler) inferServices(text, industry string, existing []string, fieldSources map[string][]string) []string {
	if h.catalog == nil {
		return existing
	}
	profile, err := h.catalog.Industry(industry)
	if err != nil {
		return existing
	}
	present := make(map[string]bool, len(existing))
	for _, svc := range existing {
		present[strings.ToLower(svc)] = true
	}
	inferred := false
	out := existing
	for _, svc := range profile.ServiceCatalog {
		key := strings.ToLower(svc)
		if present[key] || !strings.Contains(text, key) {
			continue
		}
		out = append(out, svc)
		present[key] = true
		inferred = true
	}
	if inferred {
		fieldSources["services"] = append(fieldSources["services"], models.SourceInferred)
	}
	return out
}

// nonEmptyFloor keeps a non-empty record above zero even when none of its
// fields are on the checklist, so overall quality is zero only when every
// source is entirely empty.
const nonEmptyFloor = 0.05

func checklistScore(source string, rec *models.SourceRecord) float64 {
	if rec == nil || rec.IsEmpty() {
		return 0
	}
	score := 0.0
	for _, item := range qualityChecklists[source] {
		if item.present(rec) {
			score += item.weight
		}
	}
	if score == 0 {
		return nonEmptyFloor
	}
	return score
}

// countCorroborated counts facts confirmed by two or more independent
// sources: scalar fields with the same normalized value in at least two
// records, and list fields with at least one shared entry.
func countCorroborated(set *models.SourceSet) int {
	count := 0

	scalars := []func(*models.SourceRecord) *string{
		func(r *models.SourceRecord) *string { return r.Name },
		func(r *models.SourceRecord) *string { return r.Phone },
		func(r *models.SourceRecord) *string { return r.Address },
		func(r *models.SourceRecord) *string { return r.Website },
		func(r *models.SourceRecord) *string { return r.Category },
	}
	for _, get := range scalars {
		values := make(map[string]int)
		for _, name := range models.SourceNames {
			if p := get(set.Record(name)); hasText(p) {
				values[normalizeFact(*p)]++
			}
		}
		for _, n := range values {
			if n >= 2 {
				count++
				break
			}
		}
	}

	lists := []func(*models.SourceRecord) []string{
		func(r *models.SourceRecord) []string { return r.Services },
		func(r *models.SourceRecord) []string { return r.Certifications },
		func(r *models.SourceRecord) []string { return r.ServiceAreas },
	}
	for _, get := range lists {
		entrySources := make(map[string]map[string]bool)
		for _, name := range models.SourceNames {
			for _, entry := range get(set.Record(name)) {
				key := normalizeFact(entry)
				if key == "" {
					continue
				}
				if entrySources[key] == nil {
					entrySources[key] = make(map[string]bool)
				}
				entrySources[key][name] = true
			}
		}
		for _, srcs := range entrySources {
			if len(srcs) >= 2 {
				count++
				break
			}
		}
	}

	return count
}

// normalizeFact lowercases and strips whitespace so formatting differences
// do not block corroboration. Phone-style values compare on digits only.
func normalizeFact(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, v)
	if len(digits) >= 7 && len(digits) >= len(v)/2 {
		return digits
	}
	return v
}

// missingData walks the fixed required-data list in emission order.
func (h *Handler) missingData(confirmed *models.ConfirmedFields, set *models.SourceSet, emergencyKnown bool) []string {
	minPhotos := h.config.MinGalleryPhotos
	if minPhotos <= 0 {
		minPhotos = 1
	}

	labeled := false
	for _, photo := range confirmed.Photos {
		if photo.Context != "" {
			labeled = true
			break
		}
	}

	var missing []string
	for _, point := range models.RequiredDataPoints {
		absent := false
		switch point {
		case models.MissingServices:
			absent = len(confirmed.Services) == 0
		case models.MissingPhotos:
			absent = len(confirmed.Photos) < minPhotos
		case models.MissingReviews:
			absent = confirmed.ReviewCount < 1 && len(confirmed.Reviews) == 0
		case models.MissingServiceAreas:
			absent = len(confirmed.ServiceAreas) == 0
		case models.MissingCertifications:
			absent = len(confirmed.Certifications) == 0
		case models.MissingDescription:
			absent = confirmed.Description == ""
		case models.MissingHours:
			absent = confirmed.Hours == ""
		case models.MissingUniqueValue:
			absent = confirmed.UniqueValue == ""
		case models.MissingPhotoContext:
			absent = !labeled
		case models.MissingDifferentiators:
			absent = len(confirmed.Differentiators) == 0
		case models.MissingSpecializations:
			absent = len(confirmed.Specializations) == 0
		case models.MissingEmergency:
			absent = !emergencyKnown
		}
		if absent {
			missing = append(missing, point)
		}
	}
	return missing
}

func dedupeFold(entries []string) []string {
	var out []string
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key := strings.ToLower(entry)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, entry)
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
