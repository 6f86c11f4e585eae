package chat

import (
	"fmt"
	"strings"

	"github.com/bimmerhuolto/backend/engine/domain"
)

// Shop contact details used in the canned replies.
const (
	shopName  = "Bimmerhuolto"
	shopPhone = "+358 40 123 4567"
)

// Keyword categories, checked in priority order after the plate scan:
// booking beats pricing beats specialization beats the default greeting.
var (
	// Stems rather than full words so Finnish inflections match too
	// ("varata", "varataan", "bemareita").
	bookingKeywords = []string{"varaa", "varat", "varaus", "huoltoaika"}
	pricingKeywords = []string{"hinta", "hinnat", "hinnasto", "maksaa", "kustannus", "paljonko"}
	bmwKeywords     = []string{"bmw", "bemar", "erikois"}
)

const replyGreeting = "Hei! Olen Bimmerhuollon virtuaaliassistentti. Kerro autosi rekisterinumero (esim. ABC-123), niin haen sen tiedot, tai kysy huollosta, hinnoista tai ajanvarauksesta."

const replyBooking = "Huoltoajan varaat helpoimmin soittamalla numeroon " + shopPhone + " tai verkossa osoitteessa bimmerhuolto.fi/ajanvaraus. Kerro varauksen yhteydessä autosi rekisterinumero, niin valmistaudumme käyntiisi etukäteen."

const replyPricing = "Öljynvaihto alkaen 129 €, määräaikaishuolto alkaen 249 € ja vianmääritys 89 €. Tarkan hinnan saat, kun kerrot autosi rekisterinumeron – hinnoittelemme aina automallin mukaan."

const replyBMW = "Olemme BMW-huoltoon erikoistunut korjaamo: tunnemme mallisarjojen tyyppiviat ja käytämme alkuperäistasoisia osia. Kerro autosi rekisterinumero, niin katson mallikohtaiset huoltotiedot."

const replyNotFound = "En valitettavasti löytänyt ajoneuvoa rekisterinumerolla %s. Tarkistathan, että numero on oikein, tai soita meille numeroon " + shopPhone + "."

const replyBadPlate = "Tuo näyttää rekisterinumerolta, mutta muoto on epätavallinen. Kirjoitathan sen muodossa ABC-123, niin haen auton tiedot."

const replyOtherMake = "%s %s on hieno auto! Olemme tosin erikoistuneet BMW-huoltoon, mutta autamme mielellämme myös sinua – soita numeroon " + shopPhone + ", niin katsotaan autollesi sopiva huolto."

// vehicleReply renders the structured reply for a resolved BMW, embedding
// the registry fields and the manufacturer profile's maintenance data.
func vehicleReply(rec *domain.VehicleRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Löysin autosi tiedot: %s %s", rec.Make, rec.Model)
	if rec.Year > 0 {
		fmt.Fprintf(&b, " (%d)", rec.Year)
	}
	if rec.FuelType != "" {
		fmt.Fprintf(&b, ", %s", strings.ToLower(rec.FuelType))
	}
	b.WriteString(".")

	p := rec.Profile
	if p == nil {
		b.WriteString(" Kerro mielellään lisää, missä asiassa voimme auttaa!")
		return b.String()
	}

	if p.ChassisCode != "" && p.ChassisCode != "tuntematon" {
		fmt.Fprintf(&b, " Korimalli %s, moottori %s.", p.ChassisCode, p.EngineCode)
	}
	fmt.Fprintf(&b, "\n\nHuoltosuositus: %s. Öljy: %s (%s).",
		p.ServiceInterval, p.OilSpec, p.OilCapacity)

	if len(p.CommonIssues) > 0 {
		b.WriteString("\n\nMallin tyypilliset viat, jotka kannattaa tarkistaa:")
		for _, issue := range p.CommonIssues {
			fmt.Fprintf(&b, "\n• %s", issue)
		}
	}
	if p.EstimatedValue != "" {
		fmt.Fprintf(&b, "\n\nArvioitu käypä arvo kunnosta riippuen: %s.", p.EstimatedValue)
	}
	fmt.Fprintf(&b, "\n\nVaraa huoltoaika: %s", shopPhone)
	return b.String()
}

// keywordReply applies the category priority to a lowercased message and
// returns the matching template. The default greeting always matches.
func keywordReply(lower string) string {
	switch {
	case containsAny(lower, bookingKeywords):
		return replyBooking
	case containsAny(lower, pricingKeywords):
		return replyPricing
	case containsAny(lower, bmwKeywords):
		return replyBMW
	default:
		return replyGreeting
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
