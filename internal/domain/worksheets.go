package domain

// Section is a fixed named category of a home inspection. The enumeration and
// its order are static client configuration, not derived at runtime.
type Section string

const (
	SectionRoof               Section = "roof"
	SectionExterior           Section = "exterior"
	SectionBasementFoundation Section = "basementFoundation"
	SectionHeating            Section = "heating"
	SectionCooling            Section = "cooling"
	SectionPlumbing           Section = "plumbing"
	SectionElectrical         Section = "electrical"
	SectionAttic              Section = "attic"
	SectionDoorsWindows       Section = "doorsWindows"
	SectionFireplace          Section = "fireplace"
	SectionSystemsComponents  Section = "systemsComponents"
)

// ItemConfig is the static vocabulary for one inspectable item.
type ItemConfig struct {
	Name       string
	Materials  []string
	Conditions []string
}

// SectionConfig is the full static configuration for one worksheet: display
// title, ordered item vocabularies, and the optional System Details
// pseudo-item name used for the typed whole-section detail form.
type SectionConfig struct {
	Section    Section
	Title      string
	Items      []ItemConfig
	DetailItem string
}

// ItemNames returns the ordered item names of the section, including the
// System Details pseudo-item when the section has one. Photos are keyed by
// these names.
func (c SectionConfig) ItemNames() []string {
	names := make([]string, 0, len(c.Items)+1)
	for _, it := range c.Items {
		names = append(names, it.Name)
	}
	if c.DetailItem != "" {
		names = append(names, c.DetailItem)
	}
	return names
}

// Worksheets returns the ordered configuration for every section of the
// inspection, in report order.
func Worksheets() []SectionConfig {
	return worksheetConfigs
}

// WorksheetFor looks up one section's configuration.
func WorksheetFor(section Section) (SectionConfig, bool) {
	for _, c := range worksheetConfigs {
		if c.Section == section {
			return c, true
		}
	}
	return SectionConfig{}, false
}

var worksheetConfigs = []SectionConfig{
	{
		Section:    SectionRoof,
		Title:      "ROOFING",
		DetailItem: "Roof System Details",
		Items: []ItemConfig{
			{
				Name:       "Roof Covering",
				Materials:  []string{"Asphalt Shingles", "Metal", "Tile", "Slate", "Other (see comments)"},
				Conditions: []string{"Worn", "Missing Shingles", "Cracked", "Ponding", "Multiple Layers"},
			},
			{
				Name:       "Flashing",
				Materials:  []string{"Metal", "Rubber", "Plastic", "Other (see comments)"},
				Conditions: []string{"Damaged", "Loose", "Improperly Installed", "Corroded", "Missing"},
			},
			{
				Name:       "Gutters",
				Materials:  []string{"Aluminum", "Copper", "Vinyl", "Steel", "Other (see comments)"},
				Conditions: []string{"Clogged", "Leaking", "Detached", "Improper Slope", "Missing Sections"},
			},
			{
				Name:       "Downspouts",
				Materials:  []string{"Aluminum", "Copper", "Vinyl", "Steel", "Other (see comments)"},
				Conditions: []string{"Disconnected", "Leaking", "Improper Termination", "Crushed", "Blocked"},
			},
			{
				Name:       "Skylights",
				Materials:  []string{"Glass", "Plastic", "Acrylic", "Other (see comments)"},
				Conditions: []string{"Leaking", "Cracked", "Hazy", "Improper Flashing", "Broken Seal"},
			},
		},
	},
	{
		Section: SectionExterior,
		Title:   "EXTERIOR",
		Items: []ItemConfig{
			{
				Name:       "Sidewalks",
				Materials:  []string{"Concrete", "Asphalt", "Brick", "Stone", "None"},
				Conditions: []string{"Cracked", "Settled", "Trip Hazard", "Uneven", "Spalling"},
			},
			{
				Name:       "Exterior Walls",
				Materials:  []string{"Brick", "Stone", "Stucco", "Wood", "Fiber-Cement", "Aluminum/Vinyl", "Other (see comments)"},
				Conditions: []string{"Cracked", "Rotting", "Peeling Paint", "Loose Siding", "Water Staining"},
			},
			{
				Name:       "Trim",
				Materials:  []string{"Brick", "Stone", "Stucco", "Wood", "Fiber-Cement", "Aluminum/Vinyl", "Other (see comments)"},
				Conditions: []string{"Loose", "Rotting", "Warped", "Missing Pieces", "Damaged Paint"},
			},
			{
				Name:       "Steps",
				Materials:  []string{"Concrete", "Stone", "Brick", "Wood", "Handrail(s)", "Other (see comments)"},
				Conditions: []string{"Loose", "Cracked", "Rotting", "No Handrail", "Trip Hazard"},
			},
			{
				Name:       "Windows",
				Materials:  []string{"Wood", "Aluminum"},
				Conditions: []string{"Broken Glass", "Fogged", "Leaking", "Rotting Frame", "Improper Seal"},
			},
			{
				Name:       "Storms & Screens",
				Materials:  []string{"Partial", "Full", "None"},
				Conditions: []string{"Damaged", "Missing", "Torn", "Non-Functional", "Poor Fit"},
			},
			{
				Name:       "Gutters & Downspouts",
				Materials:  []string{"Partial", "Full", "Built-in", "Aluminum", "Copper", "Galvanized", "Wood"},
				Conditions: []string{"Leaking", "Blocked", "Disconnected", "Missing", "Improper Slope"},
			},
			{
				Name:       "Chimney",
				Materials:  []string{"Brick", "Masonry", "Prefabricated"},
				Conditions: []string{"Cracked", "Leaning", "Damaged Crown", "Missing Cap", "Creosote Buildup"},
			},
			{
				Name:       "Garage",
				Materials:  []string{"Attached", "Detached", "Automatic opener"},
				Conditions: []string{"Door Inoperable", "Cracked Slab", "Sagging Roof", "Water Intrusion", "Loose Tracks"},
			},
			{
				Name:       "Driveway",
				Materials:  []string{"Asphalt", "Concrete", "Gravel", "Pavers", "Other (see comments)"},
				Conditions: []string{"Cracked", "Settled", "Potholes", "Heaved", "Eroded"},
			},
		},
	},
	{
		Section: SectionBasementFoundation,
		Title:   "STRUCTURAL COMPONENTS",
		Items: []ItemConfig{
			{
				Name:       "Foundation Walls",
				Materials:  []string{"Concrete", "Block", "Brick", "Stone", "Other (see comments)"},
				Conditions: []string{"Cracked", "Efflorescence", "Leaking", "Bow/Bulge", "Settlement Signs"},
			},
			{
				Name:       "Floor Structure",
				Materials:  []string{"Concrete", "Wood Joists", "Steel Beams", "Other (see comments)"},
				Conditions: []string{"Sagging", "Water Damage", "Termite Damage", "Rotting", "Loose Joists"},
			},
			{
				Name:       "Support Posts & Columns",
				Materials:  []string{"Steel", "Wood", "Concrete", "Other (see comments)"},
				Conditions: []string{"Rusting", "Shifting", "Improper Support", "Rotting", "Unstable Base"},
			},
			{
				Name:       "Basement Windows",
				Materials:  []string{"Glass Block", "Single Pane", "Double Pane", "Other (see comments)"},
				Conditions: []string{"Cracked", "Leaking", "Hazy Glass", "Broken Locks", "Water Stains"},
			},
			{
				Name:       "Sump Pump",
				Materials:  []string{"Present", "Operational", "Battery Backup", "None"},
				Conditions: []string{"Operational", "Not Working", "Missing Cover", "Clogged", "Disconnected"},
			},
		},
	},
	{
		Section: SectionHeating,
		Title:   "HVAC - HEATING",
		Items: []ItemConfig{
			{
				Name:       "Heating System",
				Materials:  []string{"Forced Air", "Boiler/Radiator", "Electric Baseboard", "Heat Pump", "Other (see comments)"},
				Conditions: []string{"Good", "Fair", "Poor", "Non-functional", "Hazardous"},
			},
			{
				Name:       "Fuel Type",
				Materials:  []string{"Natural Gas", "Electric", "Oil", "Propane", "Wood", "Other (see comments)"},
				Conditions: []string{"Operational", "In Use", "Disconnected", "Unknown"},
			},
			{
				Name:       "Distribution",
				Materials:  []string{"Ductwork", "Radiators", "Baseboards", "Floor Heating", "Other (see comments)"},
				Conditions: []string{"Good", "Fair", "Poor", "Non-functional", "Hazardous"},
			},
			{
				Name:       "Thermostat",
				Materials:  []string{"Manual", "Programmable", "Smart", "Zoned", "Other (see comments)"},
				Conditions: []string{"Functional", "Non-functional", "Unknown"},
			},
			{
				Name:       "Chimney/Vent",
				Materials:  []string{"Metal", "Masonry", "Direct Vent", "Power Vent", "Other (see comments)"},
				Conditions: []string{"Good", "Fair", "Poor", "Non-functional", "Hazardous"},
			},
		},
	},
	{
		Section: SectionCooling,
		Title:   "HVAC - COOLING",
		Items: []ItemConfig{
			{
				Name:       "Cooling System",
				Materials:  []string{"Central Air", "Ductless Mini-Split", "Window Unit", "Evaporative Cooler", "Other (see comments)"},
				Conditions: []string{"Good", "Fair", "Poor", "Non-functional", "Hazardous"},
			},
			{
				Name:       "Distribution",
				Materials:  []string{"Ductwork", "Wall Unit", "Ceiling Unit", "Portable", "Other (see comments)"},
				Conditions: []string{"Good", "Fair", "Poor", "Non-functional", "Hazardous"},
			},
			{
				Name:       "Thermostat",
				Materials:  []string{"Manual", "Programmable", "Smart", "Zoned", "Other (see comments)"},
				Conditions: []string{"Functional", "Non-functional", "Unknown"},
			},
			{
				Name:       "Cooling Source",
				Materials:  []string{"Electric", "Gas", "Solar", "Other (see comments)"},
				Conditions: []string{"Operational", "Disconnected", "Unknown"},
			},
			{
				Name:       "Ventilation",
				Materials:  []string{"Attic Fan", "Exhaust Fan", "Whole House Fan", "Natural", "Other (see comments)"},
				Conditions: []string{"Good", "Fair", "Poor", "Non-functional", "Hazardous"},
			},
		},
	},
	{
		Section: SectionPlumbing,
		Title:   "PLUMBING SYSTEM",
		Items: []ItemConfig{
			{
				Name:       "Water Supply",
				Materials:  []string{"Copper", "PEX", "PVC", "Galvanized Steel", "Other (see comments)"},
				Conditions: []string{"Good", "Fair", "Poor", "Non-functional", "Leaking"},
			},
			{
				Name:       "Drain, Waste & Vent (DWV)",
				Materials:  []string{"ABS", "PVC", "Cast Iron", "Copper", "Other (see comments)"},
				Conditions: []string{"Good", "Fair", "Poor", "Non-functional", "Leaking"},
			},
			{
				Name:       "Water Heater",
				Materials:  []string{"Tank", "Tankless", "Electric", "Gas", "Other (see comments)"},
				Conditions: []string{"Operational", "Non-functional", "Leaking", "Corroded"},
			},
			{
				Name:       "Fuel Source",
				Materials:  []string{"Natural Gas", "Propane", "Electric", "Solar", "Other (see comments)"},
				Conditions: []string{"Connected", "Disconnected", "Unknown"},
			},
			{
				Name:       "Fixtures",
				Materials:  []string{"Sink", "Toilet", "Shower", "Bathtub", "Other (see comments)"},
				Conditions: []string{"Good", "Fair", "Poor", "Leaking", "Clogged"},
			},
		},
	},
	{
		Section:    SectionElectrical,
		Title:      "ELECTRICAL SYSTEM",
		DetailItem: "Electrical System Details",
		Items: []ItemConfig{
			{
				Name:       "Service Panel",
				Materials:  []string{"Circuit Breakers", "Fuses", "Subpanel", "Main Panel", "Other (see comments)"},
				Conditions: []string{"Good", "Fair", "Poor", "Overloaded", "Hazardous"},
			},
			{
				Name:       "Wiring",
				Materials:  []string{"Copper", "Aluminum", "Knob & Tube", "BX", "Romex", "Other (see comments)"},
				Conditions: []string{"Good", "Fair", "Poor", "Exposed", "Hazardous"},
			},
			{
				Name:       "Outlets & Switches",
				Materials:  []string{"GFCI", "AFCI", "Ungrounded", "Three-prong", "Other (see comments)"},
				Conditions: []string{"Functional", "Non-functional", "Loose", "Missing Covers"},
			},
			{
				Name:       "Lighting",
				Materials:  []string{"Ceiling", "Wall-mounted", "Recessed", "Track", "Other (see comments)"},
				Conditions: []string{"Operational", "Non-functional", "Flickering", "Damaged"},
			},
			{
				Name:       "Smoke/CO Detectors",
				Materials:  []string{"Smoke", "CO", "Combo Unit", "Battery-powered", "Hardwired"},
				Conditions: []string{"Present", "Missing", "Non-functional", "Expired"},
			},
		},
	},
	{
		Section: SectionAttic,
		Title:   "ATTIC",
		Items: []ItemConfig{
			{
				Name:       "Access",
				Materials:  []string{"Scuttle", "Stairs", "Walk-up", "Other (see comments)"},
				Conditions: []string{"Safe", "Unsafe", "Obstructed", "Damaged"},
			},
			{
				Name:       "Structure",
				Materials:  []string{"Rafters", "Trusses", "Joists", "Beams", "Other (see comments)"},
				Conditions: []string{"Intact", "Cracked", "Sagging", "Modified"},
			},
			{
				Name:       "Ventilation",
				Materials:  []string{"Soffit", "Ridge", "Gable", "Fan", "Other (see comments)"},
				Conditions: []string{"Adequate", "Inadequate", "Blocked", "None"},
			},
			{
				Name:       "Insulation",
				Materials:  []string{"Fiberglass Batts", "Blown-in", "Foam Board", "None", "Other (see comments)"},
				Conditions: []string{"Evenly Distributed", "Compressed", "Missing", "Wet"},
			},
			{
				Name:       "Moisture Intrusion",
				Materials:  []string{"Stains", "Mold", "Leaks", "None", "Other (see comments)"},
				Conditions: []string{"Active", "Past", "Dry", "Unknown"},
			},
		},
	},
	{
		Section: SectionDoorsWindows,
		Title:   "DOORS & WINDOWS",
		Items: []ItemConfig{
			{
				Name:       "Exterior Doors",
				Materials:  []string{"Wood", "Steel", "Fiberglass", "Glass", "Other (see comments)"},
				Conditions: []string{"Misaligned", "Weathered", "Broken Seal", "Drafty"},
			},
			{
				Name:       "Interior Doors",
				Materials:  []string{"Hollow Core", "Solid Wood", "Glass Panel", "Other (see comments)"},
				Conditions: []string{"Sticking", "Loose Hinges", "Damaged", "Does Not Latch"},
			},
			{
				Name:       "Windows",
				Materials:  []string{"Single Pane", "Double Pane", "Vinyl", "Wood", "Other (see comments)"},
				Conditions: []string{"Operational", "Broken", "Fogged", "Leaking"},
			},
			{
				Name:       "Skylights",
				Materials:  []string{"Fixed", "Ventilated", "Glass", "Plastic", "Other (see comments)"},
				Conditions: []string{"Clear", "Leaking", "Cracked", "Cloudy"},
			},
			{
				Name:       "Storm Doors - Windows",
				Materials:  []string{"Aluminum", "Wood", "Vinyl", "Other (see comments)"},
				Conditions: []string{"Installed", "Missing", "Non-functional", "Damaged"},
			},
		},
	},
	{
		Section: SectionFireplace,
		Title:   "FIREPLACE",
		Items: []ItemConfig{
			{
				Name:       "Fireplace Type",
				Materials:  []string{"Wood Burning", "Gas", "Electric", "Pellet", "Other (see comments)"},
				Conditions: []string{"Operational", "Inoperable", "Excessive Creosote", "Draft Issues"},
			},
			{
				Name:       "Chimney - Vent",
				Materials:  []string{"Masonry", "Metal", "Direct Vent", "Power Vent", "Other (see comments)"},
				Conditions: []string{"Clear", "Blocked", "Damaged Flue", "Needs Cleaning"},
			},
			{
				Name:       "Damper",
				Materials:  []string{"Present", "Missing", "Inoperable", "Other (see comments)"},
				Conditions: []string{"Operational", "Stuck", "Missing", "Broken Handle"},
			},
			{
				Name:       "Firebox",
				Materials:  []string{"Brick", "Steel", "Cast Iron", "Other (see comments)"},
				Conditions: []string{"Good", "Cracked", "Leaking", "Corroded"},
			},
			{
				Name:       "Hearth",
				Materials:  []string{"Tile", "Stone", "Concrete", "Other (see comments)"},
				Conditions: []string{"Intact", "Cracked", "Loose", "Missing Tiles"},
			},
		},
	},
	{
		Section: SectionSystemsComponents,
		Title:   "SYSTEMS & COMPONENTS",
		Items: []ItemConfig{
			{
				Name:       "Garage Door",
				Materials:  []string{"Chain Drive", "Belt Drive", "Screw Drive", "Direct Drive", "Other (see comments)"},
				Conditions: []string{"Operational", "Non-functional", "Reversing Issues", "No Remote"},
			},
			{
				Name:       "Ceiling Fans",
				Materials:  []string{"Wood Blades", "Metal Blades", "Remote Control", "Other (see comments)"},
				Conditions: []string{"Balanced", "Wobbly", "Noisy", "Inoperable"},
			},
			{
				Name:       "Central Vacuum",
				Materials:  []string{"Installed", "Wall Inlets", "Accessories Present", "Other (see comments)"},
				Conditions: []string{"Operational", "Clogged", "Low Suction", "Leaking"},
			},
			{
				Name:       "Doorbell",
				Materials:  []string{"Wired", "Wireless", "Video", "Other (see comments)"},
				Conditions: []string{"Functional", "No Sound", "Delayed", "Disconnected"},
			},
			{
				Name:       "Intercom",
				Materials:  []string{"Audio Only", "Video", "Room-to-Room", "Other (see comments)"},
				Conditions: []string{"Operational", "Static", "Unclear Audio", "Non-functional"},
			},
		},
	},
}
