package services

import "strings"

// TextBlock is a bold heading followed by body paragraphs.
type TextBlock struct {
	Heading string
	Body    string
}

const (
	bookingPanelOption = "The room has the option of a room booking panel. This is a Teams certified room booking panel, that allows for users to see the status of the room (red for occupied, green for available), book the room from the touch screen, and also book it as a Teams meeting. Room booking panels may have light bars added for easy identification of room availability, and occupancy sensors, which release unoccupied rooms from unused bookings."

	worksInAssociation = "Behind the LCD, mounted offset to avoid the LCD bracket, there will need to be 1x Double GPO, and two data points (Teams Compute, Display). A Cat6A cable will need to be run from behind the display to the table box for the touch screen console and content sharing. Should BYOD be required, a second Cat6A should be run from behind the display to the table box."

	barConnectivity = "This Windows 11 based unit has a quad camera, best in class AI based audio and robust cloud based monitoring.\nAt the table, USB-C connectivity is included for content sharing. BYOD is also possible via this cable. It is recommended that MS Teams shall be the primary connectivity method using the inbuilt wireless connectivity."
)

func standardRoomBlocks(intro string) []TextBlock {
	return []TextBlock{
		{"Proposed Solution", intro + " " + barConnectivity},
		{"Works in Association", worksInAssociation},
		{"Room Options", bookingPanelOption},
	}
}

// FitOutTextBlocks returns the narrative for a fit-out package, keyed by the
// display size found in the package name.
func FitOutTextBlocks(packageName string) []TextBlock {
	switch {
	case strings.Contains(packageName, "55"):
		return standardRoomBlocks("The 6P meeting room represents rooms with a maximum viewing distance of up to 3m. Each 6P meeting room shall use a 55” display, with a Maxhub W70 Bar.")
	case strings.Contains(packageName, "65"):
		return standardRoomBlocks("The 6P meeting room represents rooms with a maximum viewing distance of up to 4.5m. Each 6P meeting room shall use a 65” display, with a Maxhub W70 Bar.")
	case strings.Contains(packageName, "75"):
		return standardRoomBlocks("The 8P meeting room represents rooms with a maximum viewing distance of up to 5.5m. Each 8P meeting room shall use a 75” display, with a Maxhub W70 Bar.")
	case strings.Contains(packageName, "86"):
		return standardRoomBlocks("The 10P meeting room represents rooms with a maximum viewing distance of up to 6.5m. Each 10P meeting room shall use an 86” display, with a Maxhub W70 Bar.")
	case strings.Contains(packageName, "98"):
		return []TextBlock{
			{"Proposed Solution", "The 16P meeting room represents the large meeting room which has a furthest participant of approximately 7.5m. The room shall require a 98” display, with a Maxhub W70 Bar. " + barConnectivity +
				"\n\nAt 7.5m, the furthest participant in this room represents the limits of the range of the audio pickup with the bar, even with the AI enhancements. The ambient noise in this room should be minimised, and an RT60 value of less than 0.5 seconds achieved. Glass on either side of the room can cause acoustic challenges, and should the acoustic conditions not be able to be guaranteed, we recommend the expanded audio option"},
			{"Audio Option", "Should the room have acoustic difficulties, we recommend a dedicated audio system in the room. A central Sennheiser ceiling microphone brings all participants within 3m of a microphone element, and when combined with the audio processor allows us to tune the room to overcome the acoustic challenges. Ceiling speakers are included to cover the room and be tuned in conjunction with the microphone. All audio equipment is cloud monitored and supported, with real time AI based audio tuning ensuring the room sounds as it should even in changing acoustic conditions."},
			{"Further Options", bookingPanelOption},
			{"Works in Association", worksInAssociation + "\n\nShould the audio option be added, a further double GPO and three data points shall be added behind the display. A data shall be required in the ceiling for the microphone."},
		}
	default:
		return []TextBlock{
			{"Proposed Solution", "Standard fit-out solution as per Bill of Materials."},
			{"Works in Association", "Standard power and data requirements apply."},
		}
	}
}

// OverviewText is the opening Partnership Overview paragraph for mode.
func OverviewText(mode Mode) string {
	if mode == ModePartner {
		return "Alder Technology is pleased to partner with Data#3 to provide this solution. " +
			"This document is split into two sections:\n" +
			"1. A Master Financial Summary (Hardware + Year 1 Services).\n" +
			"2. Detailed Bill of Materials for each specific room.\n\n" +
			"Please note: Cisco hardware is listed for engineering reference but is to be supplied and priced by Data#3."
	}
	return "Alder Technology is pleased to provide this comprehensive Audio Visual proposal for a complete office fit-out. " +
		"This document outlines the Master Financial Summary and the Detailed Bill of Materials for every room, " +
		"including all visual displays, conferencing bars, and installation services."
}

const MSAText = "Pricing excludes GST and is charged annually with an increase each year of 4% or CPI whichever is the greater. " +
	"Acceptance of a 60 month agreement upfront locks pricing for the five year term with no increase for CPI. " +
	"Pricing includes all cloud monitoring hosting charges and any onsite support required."

// Exclusions are printed one per paragraph after the MSA.
var Exclusions = []string{
	"We exclude all power and data, plus building works. All works required shall be identified and must be completed prior to our installers attending site.",
	"Out of hours work is NOT included in this proposal.",
	"We exclude all height access equipment, and all furniture protection equipment/coverings.",
	"All Teams/Exchange credentials must be provided prior to attending site. Admin credentials for any Teams endpoint must be provided to Alder Technology for the duration of any deployment including temporary Teams administrator cloud tenant access and other software admin access for the duration of deployment.",
	"The network must be active and configured for Teams prior to attending site.",
	"All external services provided by the client or their nominated systems integrator, including Teams Room accounts, Azure Intune registrations and specific deployment requirements, Exchange, Skype for Business and Microsoft security and compliance requirements and Fast track or Peering ISP plans are the responsibility of the client.",
	"Microsoft updates and the impact on the hardware, user experience and the operational state of the system are the sole responsibility of the client. Any such updates that require Alder Technology site attendance incur a Service call out fee and hourly rate at agreed hourly rates, unless a service level agreement covering these works is in place.",
	"A site planner shall be provided by Alder Technology and must be completed by the client prior to our installers attending site.",
	"Should works not be able to commence due to the above or client led delays, a call out fee may be applied.",
	"Should a managed service not be engaged, a DLP period of three (3) months is applicable.",
	"Alder Technology works with partners to deliver the best product possible. Alder Technology takes full responsibility for all parties and provides a single point of contact and management.",
	"Quotes are valid for 30 days unless otherwise specified. Delays or pauses in works due to client delays or room unavailability may result in additional charges.",
}

const (
	ClosingText      = "Thank you for your consideration. Please call me if you have any further queries."
	DefaultSignatory = "George Coles"
)
