// internal/workers/ingestion/normalize-source-data/schema.go
package normalizesourcedata

// sourceRecordSchema is the JSON schema every provider payload is checked
// against. All four sources share one record shape; fields a source never
// emits simply stay absent. Unknown fields are allowed and ignored by the
// decode step, so the schema only has to reject wrongly-typed values.
var sourceRecordSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"name":        map[string]interface{}{"type": "string"},
		"description": map[string]interface{}{"type": "string"},
		"category":    map[string]interface{}{"type": "string"},
		"phone":       map[string]interface{}{"type": "string"},
		"address":     map[string]interface{}{"type": "string"},
		"website":     map[string]interface{}{"type": "string"},
		"hoursText":   map[string]interface{}{"type": "string"},

		"services":        stringArraySchema(),
		"certifications":  stringArraySchema(),
		"serviceAreas":    stringArraySchema(),
		"keywords":        stringArraySchema(),
		"trustSignals":    stringArraySchema(),
		"differentiators": stringArraySchema(),
		"specializations": stringArraySchema(),

		"rating": map[string]interface{}{
			"type":    "number",
			"minimum": 0,
			"maximum": 5,
		},
		"reviewCount": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
		},
		"coordinates": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"lat", "lng"},
			"properties": map[string]interface{}{
				"lat": map[string]interface{}{"type": "number", "minimum": -90, "maximum": 90},
				"lng": map[string]interface{}{"type": "number", "minimum": -180, "maximum": 180},
			},
		},

		"photos": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"url"},
				"properties": map[string]interface{}{
					"url":     map[string]interface{}{"type": "string", "minLength": 1},
					"caption": map[string]interface{}{"type": "string"},
					"context": map[string]interface{}{"type": "string"},
				},
			},
		},
		"reviews": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"author": map[string]interface{}{"type": "string"},
					"rating": map[string]interface{}{"type": "number", "minimum": 0, "maximum": 5},
					"text":   map[string]interface{}{"type": "string"},
				},
			},
		},
		"competitors": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"name"},
				"properties": map[string]interface{}{
					"name":         map[string]interface{}{"type": "string", "minLength": 1},
					"services":     stringArraySchema(),
					"reviewCount":  map[string]interface{}{"type": "integer", "minimum": 0},
					"rating":       map[string]interface{}{"type": "number", "minimum": 0, "maximum": 5},
					"trustSignals": stringArraySchema(),
					"lowPrice":     map[string]interface{}{"type": "boolean"},
				},
			},
		},
		"peopleAlsoAsk": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"question"},
				"properties": map[string]interface{}{
					"question": map[string]interface{}{"type": "string", "minLength": 1},
					"answer":   map[string]interface{}{"type": "string"},
				},
			},
		},

		"pricingTransparent": map[string]interface{}{"type": "boolean"},
		"marketPosition":     map[string]interface{}{"type": "string"},

		"confirmations":      stringMapSchema(),
		"photoContexts":      stringMapSchema(),
		"uniqueValue":        map[string]interface{}{"type": "string"},
		"emergencyAvailable": map[string]interface{}{"type": "boolean"},
	},
}

func stringArraySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	}
}

func stringMapSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": map[string]interface{}{"type": "string"},
	}
}
