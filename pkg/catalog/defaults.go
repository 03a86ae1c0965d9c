// pkg/catalog/defaults.go
package catalog

// Default returns the built-in catalogue shipped with the binary. File-based
// overrides (Load) replace it wholesale; there is no merge step.
func Default() *Catalog {
	return &Catalog{
		Version:     "1.0.0",
		LastUpdated: "2026-07-14",
		Industries: []IndustryProfile{
			landscapingProfile(),
			hvacProfile(),
			plumbingProfile(),
			generalProfile(),
		},
	}
}

func landscapingProfile() IndustryProfile {
	return IndustryProfile{
		Tag:         "landscaping",
		DisplayName: "Landscaping",
		ServiceCatalog: []string{
			"Lawn Care", "Landscape Design", "Tree Trimming", "Irrigation Installation",
			"Hardscaping", "Sod Installation", "Mulching", "Seasonal Cleanup",
			"Drainage Solutions", "Outdoor Lighting",
		},
		Keywords: []string{
			"landscaping", "lawn care", "landscape design", "yard maintenance",
			"landscapers near me",
		},
		ServiceIcons: map[string]string{
			"lawn care":               "grass",
			"landscape design":        "blueprint",
			"tree trimming":           "tree",
			"irrigation installation": "droplet",
			"hardscaping":             "bricks",
			"sod installation":        "layers",
			"mulching":                "leaf",
			"seasonal cleanup":        "broom",
			"drainage solutions":      "water-flow",
			"outdoor lighting":        "lamp",
		},
		FAQBank: []FAQ{
			{Question: "How often should my lawn be mowed?", Answer: "Most lawns do best with weekly mowing during the growing season and every two weeks in cooler months."},
			{Question: "Do you offer free estimates?", Answer: "Yes, every project starts with a free on-site estimate and a written quote."},
			{Question: "When is the best time to plant new landscaping?", Answer: "Spring and early fall offer the best soil temperatures for establishing new plants in most regions."},
			{Question: "Do you haul away yard waste?", Answer: "All clippings, branches, and debris are hauled away as part of the service."},
			{Question: "Can you work with an existing irrigation system?", Answer: "Yes, existing systems are inspected first and repaired or extended rather than replaced whenever possible."},
			{Question: "Are you licensed and insured?", Answer: "Yes, the company is fully licensed and carries liability and workers' compensation insurance."},
		},
		Questions: []QuestionTemplate{
			{
				ID: "svc-confirm", Type: "multi-select", Category: "services",
				Priority: 100, Text: "Which of these services do you offer?",
				OptionsFromServices: true, Gap: "services", EmitBelowQuality: 0.15,
			},
			{
				ID: "photo-labeling", Type: "photo-label", Category: "trust",
				Priority: 90, Text: "Tell us what each photo shows (before/after, finished project, your team).",
				Gap: "photoContext",
			},
			{
				ID: "differentiators", Type: "multi-select", Category: "differentiation",
				Priority: 85, Text: "What sets your business apart from other landscapers?",
				Options: []string{
					"Family owned", "Eco-friendly practices", "Same-week scheduling",
					"Design expertise", "Commercial experience", "Satisfaction guarantee",
				},
				Gap: "differentiators",
			},
			{
				ID: "unique-value", Type: "text", Category: "differentiation",
				Priority: 80, Text: "In one or two sentences, why do customers choose you?",
				Gap: "uniqueValue",
			},
			{
				ID: "certifications", Type: "multi-select", Category: "trust",
				Priority: 75, Text: "Which licenses or certifications do you hold?",
				Options: []string{"Licensed", "Insured", "Bonded", "Certified Arborist", "Irrigation Certified"},
				Gap: "certifications",
			},
			{
				ID: "service-areas", Type: "text", Category: "operational",
				Priority: 70, Text: "Which cities or neighborhoods do you serve?",
				Gap: "serviceAreas",
			},
			{
				ID: "specialization", Type: "single-select", Category: "services",
				Priority: 65, Text: "Do you specialize in residential, commercial, or both?",
				Options: []string{"Residential", "Commercial", "Both"},
				Gap:     "specializations",
			},
			{
				ID: "emergency-availability", Type: "yes-no", Category: "operational",
				Priority: 60, Text: "Do you offer emergency or storm-damage services?",
				Gap: "emergencyAvailability",
			},
			{
				ID: "business-story", Type: "text", Category: "differentiation",
				Priority: 55, Text: "Tell us a little about how your business got started.",
				Gap: "businessDescription", EmitBelowQuality: 0.2,
			},
		},
		HeadlineFallback:    "Professional Landscaping Services You Can Trust",
		SubheadlineFallback: "Transforming outdoor spaces with expert care",
		AboutFallback:       "A locally owned landscaping company dedicated to beautiful, healthy outdoor spaces.",
		CTAText:             "Get Your Free Landscaping Quote",
		EmergencyCopy:       "Storm damage? We respond fast to downed limbs and drainage emergencies.",
	}
}

func hvacProfile() IndustryProfile {
	return IndustryProfile{
		Tag:         "hvac",
		DisplayName: "HVAC",
		ServiceCatalog: []string{
			"AC Repair", "AC Installation", "Furnace Repair", "Furnace Installation",
			"Duct Cleaning", "Heat Pump Service", "Thermostat Installation", "Maintenance Plans",
		},
		Keywords: []string{"hvac", "air conditioning repair", "heating and cooling", "furnace repair"},
		FAQBank: []FAQ{
			{Question: "How often should my HVAC system be serviced?", Answer: "Twice a year: cooling systems in spring and heating systems in fall."},
			{Question: "Do you offer emergency repairs?", Answer: "Yes, emergency repair service is available for heating and cooling failures."},
			{Question: "How long does an AC installation take?", Answer: "Most residential installations are completed in a single day."},
			{Question: "Are your technicians certified?", Answer: "All technicians are EPA certified and factory trained."},
			{Question: "Do you offer financing?", Answer: "Flexible financing options are available for new system installations."},
		},
		Questions: []QuestionTemplate{
			{ID: "svc-confirm", Type: "multi-select", Category: "services", Priority: 100,
				Text: "Which of these services do you offer?", OptionsFromServices: true,
				Gap: "services", EmitBelowQuality: 0.15},
			{ID: "photo-labeling", Type: "photo-label", Category: "trust", Priority: 90,
				Text: "Tell us what each photo shows (installs, service calls, your team).", Gap: "photoContext"},
			{ID: "differentiators", Type: "multi-select", Category: "differentiation", Priority: 85,
				Text: "What sets your business apart from other HVAC companies?",
				Options: []string{"24/7 emergency service", "Upfront pricing", "NATE certified", "Maintenance plans", "Family owned"},
				Gap:     "differentiators"},
			{ID: "unique-value", Type: "text", Category: "differentiation", Priority: 80,
				Text: "In one or two sentences, why do customers choose you?", Gap: "uniqueValue"},
			{ID: "certifications", Type: "multi-select", Category: "trust", Priority: 75,
				Text:    "Which licenses or certifications do you hold?",
				Options: []string{"Licensed", "Insured", "NATE Certified", "EPA Certified"},
				Gap:     "certifications"},
			{ID: "service-areas", Type: "text", Category: "operational", Priority: 70,
				Text: "Which cities or neighborhoods do you serve?", Gap: "serviceAreas"},
			{ID: "emergency-availability", Type: "yes-no", Category: "operational", Priority: 60,
				Text: "Do you offer 24/7 emergency service?", Gap: "emergencyAvailability"},
		},
		HeadlineFallback:    "Reliable Heating & Cooling Services",
		SubheadlineFallback: "Comfort you can count on, all year round",
		AboutFallback:       "A trusted local HVAC company keeping homes comfortable in every season.",
		CTAText:             "Schedule Your Service Today",
		EmergencyCopy:       "No heat? No AC? Our emergency team is on call 24/7.",
	}
}

func plumbingProfile() IndustryProfile {
	return IndustryProfile{
		Tag:         "plumbing",
		DisplayName: "Plumbing",
		ServiceCatalog: []string{
			"Drain Cleaning", "Water Heater Repair", "Leak Detection", "Pipe Repair",
			"Fixture Installation", "Sewer Line Service", "Repiping", "Gas Line Service",
		},
		Keywords: []string{"plumber", "plumbing repair", "drain cleaning", "water heater"},
		FAQBank: []FAQ{
			{Question: "Do you charge for estimates?", Answer: "No, estimates are always free with upfront flat-rate pricing."},
			{Question: "Do you handle emergency calls?", Answer: "Yes, emergency plumbers are available around the clock."},
			{Question: "How do I know if I have a hidden leak?", Answer: "Unexplained water bills, damp spots, or running-water sounds usually mean a hidden leak worth inspecting."},
			{Question: "Are you licensed and insured?", Answer: "Yes, all work is performed by licensed, insured plumbers."},
			{Question: "How long does a water heater replacement take?", Answer: "Most replacements are done within two to three hours."},
		},
		Questions: []QuestionTemplate{
			{ID: "svc-confirm", Type: "multi-select", Category: "services", Priority: 100,
				Text: "Which of these services do you offer?", OptionsFromServices: true,
				Gap: "services", EmitBelowQuality: 0.15},
			{ID: "photo-labeling", Type: "photo-label", Category: "trust", Priority: 90,
				Text: "Tell us what each photo shows (repairs, installs, your team).", Gap: "photoContext"},
			{ID: "differentiators", Type: "multi-select", Category: "differentiation", Priority: 85,
				Text: "What sets your business apart from other plumbers?",
				Options: []string{"24/7 availability", "Flat-rate pricing", "Licensed master plumber", "Warranty on work", "Family owned"},
				Gap:     "differentiators"},
			{ID: "unique-value", Type: "text", Category: "differentiation", Priority: 80,
				Text: "In one or two sentences, why do customers choose you?", Gap: "uniqueValue"},
			{ID: "certifications", Type: "multi-select", Category: "trust", Priority: 75,
				Text:    "Which licenses or certifications do you hold?",
				Options: []string{"Licensed", "Insured", "Bonded", "Master Plumber"},
				Gap:     "certifications"},
			{ID: "service-areas", Type: "text", Category: "operational", Priority: 70,
				Text: "Which cities or neighborhoods do you serve?", Gap: "serviceAreas"},
			{ID: "emergency-availability", Type: "yes-no", Category: "operational", Priority: 60,
				Text: "Do you offer emergency plumbing service?", Gap: "emergencyAvailability"},
		},
		HeadlineFallback:    "Expert Plumbing Services, Done Right",
		SubheadlineFallback: "Fast, honest plumbing for your home or business",
		AboutFallback:       "A dependable local plumbing company built on honest pricing and quality work.",
		CTAText:             "Call Your Local Plumber Now",
		EmergencyCopy:       "Burst pipe? Backed-up drain? Emergency plumbers are standing by.",
	}
}

func generalProfile() IndustryProfile {
	return IndustryProfile{
		Tag:            GeneralTag,
		DisplayName:    "Local Services",
		ServiceCatalog: []string{},
		Keywords:       []string{"local services", "near me"},
		FAQBank: []FAQ{
			{Question: "Do you offer free estimates?", Answer: "Yes, every job starts with a free estimate."},
			{Question: "Are you licensed and insured?", Answer: "Yes, the business is fully licensed and insured."},
			{Question: "What areas do you serve?", Answer: "We serve the local metro area and surrounding communities."},
			{Question: "How do I schedule service?", Answer: "Call or use the contact form and we will follow up the same business day."},
		},
		Questions: []QuestionTemplate{
			{ID: "svc-confirm", Type: "text", Category: "services", Priority: 100,
				Text: "What services does your business offer?", Gap: "services", EmitBelowQuality: 0.15},
			{ID: "photo-labeling", Type: "photo-label", Category: "trust", Priority: 90,
				Text: "Tell us what each photo shows.", Gap: "photoContext"},
			{ID: "differentiators", Type: "text", Category: "differentiation", Priority: 85,
				Text: "What sets your business apart from competitors?", Gap: "differentiators"},
			{ID: "unique-value", Type: "text", Category: "differentiation", Priority: 80,
				Text: "In one or two sentences, why do customers choose you?", Gap: "uniqueValue"},
			{ID: "service-areas", Type: "text", Category: "operational", Priority: 70,
				Text: "Which cities or neighborhoods do you serve?", Gap: "serviceAreas"},
		},
		HeadlineFallback:    "Quality Service From a Team You Can Trust",
		SubheadlineFallback: "Proudly serving our local community",
		AboutFallback:       "A locally owned business committed to quality work and honest service.",
		CTAText:             "Request Your Free Estimate",
	}
}
