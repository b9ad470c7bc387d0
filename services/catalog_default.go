package services

import "github.com/shopspring/decimal"

func usd(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

const (
	fitOutBar         = "Maxhub XBAR W70 - Teams Certified Windows 11 MTR"
	fitOutCables      = "Custom Cables, Hardware and Consumables"
	largeMountBracket = "Wall Mount Bracket VP-F100 (82\"-98\")"
)

// PremiumAudioUpgrade is offered with the 98" fit-out package.
func PremiumAudioUpgrade() *Upgrade {
	return &Upgrade{
		Name:      "Premium Audio Upgrade (Xilica/Sennheiser)",
		UnitPrice: usd(15860),
		Items: []LineItem{
			{Category: "DSP", Description: "Xilica Room Hub - AI Based Digital Signal Processor. Dual NIC, USB, 8ch AEC", UnitPrice: usd(3200), Qty: 1},
			{Category: "Mic", Description: "Sennheiser TeamConnect Ceiling 2 - Beamforming Microphone POE, White", UnitPrice: usd(5800), Qty: 1},
			{Category: "Speakers", Description: "Xilica Sonia-C5 - Bezel-less 5.25\" coaxial in-ceiling loudspeaker", UnitPrice: usd(240), Qty: 4},
			{Category: "Amp", Description: "Xilica Sonia-Amp - Four Channel POE++ Amplifier with Dante", UnitPrice: usd(1300), Qty: 1},
			{Category: "Cabling", Description: "Custom Cables, Hardware and Consumables", UnitPrice: usd(600), Qty: 1},
			{Category: "Services", Description: "Project Services (Staging, Install, Engineering, PM)", UnitPrice: usd(4000), Qty: 1},
		},
	}
}

// DefaultTiers returns the built-in partner tiers and fit-out packages.
func DefaultTiers() []Tier {
	return []Tier{
		// Partner (Data#3) tiers.
		{
			Name: "Small Room", Mode: ModePartner, MaxDistance: 3.0,
			VCItems:      []string{"Cisco Room Bar"},
			DisplayModel: "Samsung 55\" Commercial Display", DisplayPrice: usd(1600),
			MountModel: "Wall Mount Bracket", MountPrice: usd(100),
			CablingDesc: "HDMI & Patch Leads", CablingPrice: usd(150),
			ServicePrice: usd(1500), ManagedServiceAnnual: usd(1200),
		},
		{
			Name: "Medium Room", Mode: ModePartner, MaxDistance: 4.5,
			VCItems:      []string{"Cisco Room Bar", "Cisco Table Microphone Pro"},
			DisplayModel: "Samsung 65\" Commercial Display", DisplayPrice: usd(2100),
			MountModel: "Wall Mount Bracket", MountPrice: usd(120),
			CablingDesc: "HDMI & Patch Leads", CablingPrice: usd(200),
			ServicePrice: usd(1800), ManagedServiceAnnual: usd(1200),
		},
		{
			Name: "Large Room", Mode: ModePartner, MaxDistance: 5.5,
			VCItems:      []string{"Cisco Room Bar Pro", "Cisco Ceiling Microphone Pro"},
			DisplayModel: "Samsung 75\" Commercial Display", DisplayPrice: usd(2800),
			MountModel: "Heavy Duty Wall Mount", MountPrice: usd(180),
			CablingDesc: "Integration Kit & Cabling", CablingPrice: usd(250),
			ServicePrice: usd(2500), ManagedServiceAnnual: usd(1200),
		},
		{
			Name: "X-Large Room", Mode: ModePartner, MaxDistance: 6.5,
			VCItems:      []string{"Cisco Room Bar Pro", "Cisco Ceiling Microphone Pro"},
			DisplayModel: "Samsung 85\"/86\" Commercial Display", DisplayPrice: usd(3500),
			MountModel: "Heavy Duty Wall Mount (86\")", MountPrice: usd(250),
			CablingDesc: "Integration Kit & Cabling", CablingPrice: usd(300),
			ServicePrice: usd(2800), ManagedServiceAnnual: usd(1200),
		},
		{
			Name: "Boardroom", Mode: ModePartner, MaxDistance: 7.5,
			VCItems: []string{
				"Cisco Room Kit EQ",
				"Cisco Quad Camera",
				"2x Cisco Ceiling Microphone Pro",
				"AV Integrator License",
				"6-8x Shure Ceiling Speakers",
			},
			DisplayModel: "Samsung 98\" Commercial Display", DisplayPrice: usd(9500),
			MountModel: "Heavy Duty Wall Mount (98\")", MountPrice: usd(350),
			CablingDesc: "Audio Integration & Cabling Kit", CablingPrice: usd(600),
			ServicePrice: usd(4500), ManagedServiceAnnual: usd(1500),
		},

		// Fit-out packages.
		{
			Name: "Fit-Out 55", Mode: ModeFitOut, MaxDistance: 3.0,
			VCModel: "Maxhub XBAR W70", VCPrice: usd(3900),
			DisplayModel: "LG 55UL3J-B - 55\" UHD Commercial Display", DisplayPrice: usd(1600),
			MountModel: "Wall Mount Bracket (Tilt)", MountPrice: usd(80),
			CablingDesc: "Cables, Hardware and Consumables", CablingPrice: usd(200),
			ServicePrice: usd(2500), ManagedServiceAnnual: usd(1200),
		},
		{
			Name: "Fit-Out 65", Mode: ModeFitOut, MaxDistance: 4.5,
			VCModel: "Maxhub XBAR W70", VCPrice: usd(3900),
			DisplayModel: "LG 65UL3J-B - 65\" UHD Commercial Display", DisplayPrice: usd(2100),
			MountModel: "Wall Mount Bracket (Tilt)", MountPrice: usd(90),
			CablingDesc: "Cables, Hardware and Consumables", CablingPrice: usd(250),
			ServicePrice: usd(2800), ManagedServiceAnnual: usd(1200),
		},
		{
			Name: "Fit-Out 75", Mode: ModeFitOut, MaxDistance: 5.5,
			VCModel: "Maxhub XBAR W70", VCPrice: usd(3900),
			DisplayModel: "LG 75UL3J-B - 75\" UHD Commercial Display", DisplayPrice: usd(2800),
			MountModel: "Wall Mount Bracket Heavy Duty", MountPrice: usd(100),
			CablingDesc: "Cables, Hardware and Consumables", CablingPrice: usd(300),
			ServicePrice: usd(3000), ManagedServiceAnnual: usd(1200),
		},
		{
			Name: "Fit-Out 86", Mode: ModeFitOut, MaxDistance: 6.5,
			VCModel: fitOutBar, VCPrice: usd(3900),
			DisplayModel: "LG 86UL3J-B - Commercial Professional Monitor 86\" LED, 4K UHD", DisplayPrice: usd(3300),
			MountModel: largeMountBracket, MountPrice: usd(100),
			CablingDesc: fitOutCables, CablingPrice: usd(300),
			ServicePrice: usd(3500), ManagedServiceAnnual: usd(1200),
		},
		{
			Name: "Fit-Out 98", Mode: ModeFitOut, MaxDistance: 7.5,
			VCModel: fitOutBar, VCPrice: usd(3900),
			DisplayModel: "LG 98UM5K - Commercial Professional Monitor 98\" LED, 4K UHD", DisplayPrice: usd(7500),
			MountModel: largeMountBracket, MountPrice: usd(100),
			CablingDesc: fitOutCables, CablingPrice: usd(300),
			ServicePrice: usd(3500), ManagedServiceAnnual: usd(1500),
			AudioUpgrade: PremiumAudioUpgrade(),
		},
	}
}

// DefaultCatalog builds the catalog from DefaultTiers. The built-in table is
// known to be valid, so construction errors are programming mistakes.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultTiers())
	if err != nil {
		panic("default catalog: " + err.Error())
	}
	return c
}
