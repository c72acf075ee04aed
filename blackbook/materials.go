package blackbook

// ToolDiameters indexes the chip load tables, in inches.
var ToolDiameters = [8]float64{0.125, 0.1875, 0.25, 0.375, 0.5, 0.625, 0.75, 1.0}

var materialDatabase = []MaterialData{
	{
		Name:          "Aluminum 6061-T6",
		Category:      NonFerrous,
		Grades:        []string{"6061-T6", "6061-T651"},
		Description:   "General purpose aluminum alloy, excellent machinability",
		HardnessHB:    95,
		Machinability: 200,
		SFMHSS:        SFM{300, 600, 450},
		SFMCobalt:     SFM{400, 800, 600},
		SFMCarbide:    SFM{800, 1500, 1200},
		SFMCoated:     SFM{1000, 2000, 1500},

		ChipLoadsCarbide: [8]float64{0.001, 0.002, 0.002, 0.003, 0.004, 0.005, 0.006, 0.007},
		ChipLoadsHSS:     [8]float64{0.0005, 0.001, 0.001, 0.002, 0.002, 0.003, 0.003, 0.004},

		MaxDOCRatio:   1.5,
		EngagementPct: 30,
		HighFeed:      true,
	},
	{
		Name:          "Aluminum 7075-T6",
		Category:      NonFerrous,
		Grades:        []string{"7075-T6", "7075-T651"},
		Description:   "High strength aircraft aluminum",
		HardnessHB:    150,
		Machinability: 150,
		SFMHSS:        SFM{250, 500, 400},
		SFMCobalt:     SFM{350, 700, 550},
		SFMCarbide:    SFM{800, 1500, 1100},
		SFMCoated:     SFM{900, 1800, 1300},

		ChipLoadsCarbide: [8]float64{0.001, 0.002, 0.002, 0.003, 0.004, 0.005, 0.006, 0.007},
		ChipLoadsHSS:     [8]float64{0.0005, 0.001, 0.001, 0.002, 0.002, 0.003, 0.003, 0.004},

		MaxDOCRatio:   1.0,
		EngagementPct: 25,
		HighFeed:      true,
	},
	{
		Name:          "Aluminum 2024-T3",
		Category:      NonFerrous,
		Grades:        []string{"2024-T3", "2024-T4", "2024-T6"},
		Description:   "High strength, fair corrosion resistance",
		HardnessHB:    120,
		Machinability: 170,
		SFMHSS:        SFM{250, 500, 400},
		SFMCobalt:     SFM{350, 700, 550},
		SFMCarbide:    SFM{800, 1500, 1100},
		SFMCoated:     SFM{900, 1800, 1300},

		ChipLoadsCarbide: [8]float64{0.001, 0.002, 0.002, 0.003, 0.004, 0.005, 0.006, 0.007},
		ChipLoadsHSS:     [8]float64{0.0005, 0.001, 0.001, 0.002, 0.002, 0.003, 0.003, 0.004},

		MaxDOCRatio:   1.0,
		EngagementPct: 25,
		HighFeed:      true,
	},
	{
		Name:          "Brass C360",
		Category:      NonFerrous,
		Grades:        []string{"C36000", "Free Machining Brass"},
		Description:   "Excellent machinability, free machining brass",
		HardnessHB:    80,
		Machinability: 100,
		SFMHSS:        SFM{200, 400, 300},
		SFMCobalt:     SFM{300, 600, 450},
		SFMCarbide:    SFM{800, 1500, 1200},
		SFMCoated:     SFM{1000, 1800, 1400},

		ChipLoadsCarbide: [8]float64{0.001, 0.001, 0.002, 0.0025, 0.003, 0.004, 0.004, 0.005},
		ChipLoadsHSS:     [8]float64{0.0005, 0.001, 0.001, 0.0015, 0.002, 0.0025, 0.003, 0.0035},

		MaxDOCRatio:   2.0,
		EngagementPct: 40,
		HighFeed:      true,
	},
	{
		Name:          "Copper C110",
		Category:      NonFerrous,
		Grades:        []string{"C11000", "ETP Copper"},
		Description:   "Electrolytic tough pitch copper",
		HardnessHB:    45,
		Machinability: 20,
		SFMHSS:        SFM{100, 200, 150},
		SFMCobalt:     SFM{150, 300, 225},
		SFMCarbide:    SFM{600, 1000, 800},
		SFMCoated:     SFM{800, 1200, 1000},

		ChipLoadsCarbide: [8]float64{0.001, 0.001, 0.002, 0.0025, 0.003, 0.004, 0.004, 0.005},
		ChipLoadsHSS:     [8]float64{0.0003, 0.0005, 0.001, 0.0015, 0.002, 0.0025, 0.003, 0.0035},

		MaxDOCRatio:   1.0,
		EngagementPct: 20,
		Coolant:       true,
	},
	{
		Name:          "Steel 1018",
		Category:      SteelLowAlloy,
		Grades:        []string{"1018", "A36", "1020"},
		Description:   "Low carbon steel, good machinability",
		HardnessHB:    126,
		Machinability: 78,
		SFMHSS:        SFM{80, 150, 120},
		SFMCobalt:     SFM{100, 200, 150},
		SFMCarbide:    SFM{200, 400, 300},
		SFMCoated:     SFM{300, 600, 450},

		ChipLoadsCarbide: [8]float64{0.0005, 0.001, 0.0015, 0.002, 0.003, 0.004, 0.005, 0.006},
		ChipLoadsHSS:     [8]float64{0.0003, 0.0005, 0.001, 0.0015, 0.002, 0.0025, 0.003, 0.004},

		MaxDOCRatio:   1.0,
		EngagementPct: 30,
		Coolant:       true,
	},
	{
		Name:          "Steel 4140",
		Category:      SteelLowAlloy,
		Grades:        []string{"4140", "4142", "4150"},
		Description:   "Chromoly steel, medium hardenability",
		HardnessHB:    220,
		Machinability: 66,
		SFMHSS:        SFM{60, 100, 80},
		SFMCobalt:     SFM{80, 140, 110},
		SFMCarbide:    SFM{150, 300, 225},
		SFMCoated:     SFM{200, 400, 300},

		ChipLoadsCarbide: [8]float64{0.0005, 0.0005, 0.001, 0.001, 0.0015, 0.002, 0.003, 0.004},
		ChipLoadsHSS:     [8]float64{0.0002, 0.0003, 0.0005, 0.001, 0.001, 0.0015, 0.002, 0.0025},

		MaxDOCRatio:   0.5,
		EngagementPct: 20,
		Coolant:       true,
	},
	{
		Name:          "Steel 8620",
		Category:      SteelLowAlloy,
		Grades:        []string{"8620", "8620H"},
		Description:   "Case-hardening steel, tough core with hard surface",
		HardnessHB:    200,
		Machinability: 65,
		SFMHSS:        SFM{50, 90, 70},
		SFMCobalt:     SFM{70, 120, 95},
		SFMCarbide:    SFM{130, 260, 195},
		SFMCoated:     SFM{180, 350, 265},

		ChipLoadsCarbide: [8]float64{0.0005, 0.0005, 0.001, 0.001, 0.0015, 0.002, 0.003, 0.004},
		ChipLoadsHSS:     [8]float64{0.0002, 0.0003, 0.0005, 0.001, 0.001, 0.0015, 0.002, 0.0025},

		MaxDOCRatio:   0.5,
		EngagementPct: 20,
		Coolant:       true,
	},
	{
		Name:          "Steel A2",
		Category:      SteelHighAlloy,
		Grades:        []string{"A2", "A6", "D2", "O1"},
		Description:   "Air hardening tool steel",
		HardnessHB:    235,
		Machinability: 65,
		SFMHSS:        SFM{40, 80, 60},
		SFMCobalt:     SFM{50, 100, 75},
		SFMCarbide:    SFM{100, 250, 175},
		SFMCoated:     SFM{150, 350, 250},
		SFMCeramic:    &SFM{300, 500, 400},

		ChipLoadsCarbide: [8]float64{0.0003, 0.0005, 0.0008, 0.001, 0.001, 0.0015, 0.002, 0.003},
		ChipLoadsHSS:     [8]float64{0.0001, 0.0002, 0.0003, 0.0005, 0.0008, 0.001, 0.001, 0.002},

		MaxDOCRatio:   0.3,
		EngagementPct: 15,
		Coolant:       true,
	},
	{
		Name:          "Stainless 304",
		Category:      StainlessAustenitic,
		Grades:        []string{"304", "304L", "302", "303"},
		Description:   "Austenitic stainless, work hardens quickly",
		HardnessHB:    150,
		Machinability: 45,
		SFMHSS:        SFM{30, 60, 45},
		SFMCobalt:     SFM{50, 100, 75},
		SFMCarbide:    SFM{100, 350, 225},
		SFMCoated:     SFM{150, 450, 300},

		ChipLoadsCarbide: [8]float64{0.0001, 0.0002, 0.0005, 0.001, 0.0015, 0.002, 0.003, 0.004},
		ChipLoadsHSS:     [8]float64{0.0001, 0.0001, 0.0002, 0.0005, 0.001, 0.001, 0.002, 0.0025},

		MaxDOCRatio:   0.5,
		EngagementPct: 10,
		Coolant:       true,
		HighFeed:      true,
	},
	{
		Name:          "Stainless 316",
		Category:      StainlessAustenitic,
		Grades:        []string{"316", "316L"},
		Description:   "Marine grade stainless, more difficult than 304",
		HardnessHB:    160,
		Machinability: 36,
		SFMHSS:        SFM{25, 50, 40},
		SFMCobalt:     SFM{40, 80, 60},
		SFMCarbide:    SFM{100, 250, 175},
		SFMCoated:     SFM{150, 350, 250},

		ChipLoadsCarbide: [8]float64{0.0001, 0.0002, 0.0005, 0.001, 0.0015, 0.002, 0.003, 0.004},
		ChipLoadsHSS:     [8]float64{0.0001, 0.0001, 0.0002, 0.0005, 0.001, 0.001, 0.002, 0.0025},

		MaxDOCRatio:   0.4,
		EngagementPct: 10,
		Coolant:       true,
		HighFeed:      true,
	},
	{
		Name:          "Stainless 17-4PH",
		Category:      StainlessPrecipitation,
		Grades:        []string{"17-4PH", "15-5PH"},
		Description:   "Precipitation hardening stainless",
		HardnessHB:    330,
		Machinability: 48,
		SFMHSS:        SFM{30, 60, 45},
		SFMCobalt:     SFM{50, 90, 70},
		SFMCarbide:    SFM{90, 250, 170},
		SFMCoated:     SFM{120, 300, 210},

		ChipLoadsCarbide: [8]float64{0.0003, 0.0005, 0.001, 0.001, 0.002, 0.002, 0.004, 0.006},
		ChipLoadsHSS:     [8]float64{0.0001, 0.0002, 0.0003, 0.0005, 0.001, 0.0015, 0.002, 0.003},

		MaxDOCRatio:   0.5,
		EngagementPct: 15,
		Coolant:       true,
	},
	{
		Name:          "Stainless 440C",
		Category:      StainlessMartensitic,
		Grades:        []string{"440C", "420"},
		Description:   "Martensitic stainless, can be hardened to 60 HRC",
		HardnessHB:    240,
		Machinability: 40,
		SFMHSS:        SFM{25, 50, 40},
		SFMCobalt:     SFM{40, 80, 60},
		SFMCarbide:    SFM{90, 250, 170},
		SFMCoated:     SFM{120, 300, 210},

		ChipLoadsCarbide: [8]float64{0.0001, 0.0002, 0.0005, 0.0005, 0.001, 0.001, 0.003, 0.004},
		ChipLoadsHSS:     [8]float64{0.00005, 0.0001, 0.0002, 0.0003, 0.0005, 0.001, 0.0015, 0.002},

		MaxDOCRatio:   0.3,
		EngagementPct: 12,
		Coolant:       true,
	},
	{
		Name:          "Cast Iron Gray",
		Category:      CastIron,
		Grades:        []string{"Class 30", "Class 40"},
		Description:   "Gray cast iron, excellent damping properties",
		HardnessHB:    210,
		Machinability: 110,
		SFMHSS:        SFM{50, 120, 85},
		SFMCobalt:     SFM{80, 150, 115},
		SFMCarbide:    SFM{100, 400, 250},
		SFMCoated:     SFM{150, 500, 325},
		SFMCeramic:    &SFM{400, 800, 600},

		ChipLoadsCarbide: [8]float64{0.0005, 0.001, 0.002, 0.003, 0.004, 0.005, 0.006, 0.008},
		ChipLoadsHSS:     [8]float64{0.0003, 0.0005, 0.001, 0.0015, 0.002, 0.003, 0.004, 0.005},

		MaxDOCRatio:   1.0,
		EngagementPct: 40,
	},
	{
		Name:          "Cast Iron Ductile",
		Category:      CastIron,
		Grades:        []string{"65-45-12", "80-55-06"},
		Description:   "Ductile/nodular cast iron",
		HardnessHB:    180,
		Machinability: 90,
		SFMHSS:        SFM{40, 100, 70},
		SFMCobalt:     SFM{60, 120, 90},
		SFMCarbide:    SFM{80, 300, 190},
		SFMCoated:     SFM{120, 400, 260},
		SFMCeramic:    &SFM{300, 600, 450},

		ChipLoadsCarbide: [8]float64{0.0005, 0.001, 0.0015, 0.002, 0.0025, 0.003, 0.004, 0.005},
		ChipLoadsHSS:     [8]float64{0.0003, 0.0005, 0.0008, 0.001, 0.0015, 0.002, 0.003, 0.004},

		MaxDOCRatio:   0.8,
		EngagementPct: 35,
		Coolant:       true,
	},
	{
		Name:          "Titanium Ti-6Al-4V",
		Category:      Titanium,
		Grades:        []string{"Grade 5", "Ti-6Al-4V", "Ti64"},
		Description:   "Most common titanium alloy, poor thermal conductivity",
		HardnessHB:    334,
		Machinability: 22,
		SFMHSS:        SFM{20, 40, 30},
		SFMCobalt:     SFM{30, 60, 45},
		SFMCarbide:    SFM{50, 150, 100},
		SFMCoated:     SFM{80, 200, 140},

		ChipLoadsCarbide: [8]float64{0.0003, 0.0005, 0.001, 0.001, 0.001, 0.0015, 0.002, 0.003},
		ChipLoadsHSS:     [8]float64{0.0001, 0.0002, 0.0003, 0.0005, 0.0008, 0.001, 0.001, 0.002},

		MaxDOCRatio:   0.3,
		EngagementPct: 10,
		Coolant:       true,
		HighFeed:      true,
	},
	{
		Name:          "Inconel 718",
		Category:      HighTempAlloy,
		Grades:        []string{"Inconel 718", "N07718"},
		Description:   "Nickel-based superalloy, extreme heat resistance",
		HardnessHB:    450,
		Machinability: 12,
		SFMHSS:        SFM{10, 20, 15},
		SFMCobalt:     SFM{15, 30, 22},
		SFMCarbide:    SFM{30, 80, 55},
		SFMCoated:     SFM{50, 120, 85},
		SFMCeramic:    &SFM{200, 400, 300},

		ChipLoadsCarbide: [8]float64{0.0002, 0.0003, 0.0005, 0.0008, 0.001, 0.001, 0.002, 0.003},
		ChipLoadsHSS:     [8]float64{0.00005, 0.0001, 0.0002, 0.0003, 0.0005, 0.0008, 0.001, 0.0015},

		MaxDOCRatio:   0.2,
		EngagementPct: 8,
		Coolant:       true,
		HighFeed:      true,
	},
}
