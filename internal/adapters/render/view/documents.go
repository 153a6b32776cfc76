package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bnema/petcare-cli/internal/domain"
)

const vaccinationHorizon = 30 * 24 * time.Hour

func SessionDocument(session domain.Session, now time.Time) Document {
	user := session.User
	name := strings.TrimSpace(user.Name)
	if name == "" {
		name = user.Email
	}
	if name == "" {
		name = "unknown user"
	}

	item := Item{
		Title: name,
		Badge: user.Role.Label(),
		Details: []string{
			field("email", user.Email),
			field("id", user.ID),
			field("refresh", yesNo(session.CanRefresh())),
		},
	}
	if !session.ExpiresAt.IsZero() {
		item.Due = &Due{Label: "token expires", At: session.ExpiresAt, Horizon: time.Hour}
		if session.ExpiringSoon(now, 0) && session.CanRefresh() {
			item.Warning = "access token expired, it will be refreshed on the next request"
		}
	}

	return Document{Title: "PetCare Session", Items: []Item{item}}
}

func PetsDocument(pets []domain.Pet) Document {
	doc := Document{
		Title:   "Pets",
		Summary: fmt.Sprintf("pets: %d", len(pets)),
		Empty:   "No pets registered.",
	}
	for _, pet := range pets {
		doc.Items = append(doc.Items, petItem(pet))
	}
	return doc
}

func PetDocument(pet domain.Pet) Document {
	return Document{Title: "Pet", Items: []Item{petItem(pet)}}
}

func petItem(pet domain.Pet) Item {
	item := Item{
		Title: fmt.Sprintf("%s (%s)", pet.Name, pet.ID),
		Badge: pet.Species,
		Details: []string{
			field("breed", pet.Breed),
			field("sex", pet.Sex),
			field("notes", pet.Notes),
			field("photo", pet.PhotoURL),
		},
	}
	if pet.BirthDate != nil {
		item.Details = append(item.Details, field("born", formatDate(*pet.BirthDate)))
	}
	if pet.WeightKg > 0 {
		item.Details = append(item.Details, field("weight", formatNumber(pet.WeightKg)+" kg"))
	}
	return item
}

func VaccinationsDocument(vaccinations []domain.Vaccination) Document {
	doc := Document{
		Title:   "Vaccinations",
		Summary: fmt.Sprintf("vaccinations: %d", len(vaccinations)),
		Empty:   "No vaccinations recorded.",
	}
	for _, v := range vaccinations {
		item := Item{
			Title: fmt.Sprintf("%s (%s)", v.Vaccine, v.ID),
			Badge: v.Dose,
			Details: []string{
				field("applied", formatDate(v.AppliedAt)),
				field("vet", v.Veterinarian),
				field("batch", v.Batch),
				field("certificate", v.CertificateURL),
			},
		}
		if v.NextDoseAt != nil {
			item.Due = &Due{Label: "next dose", At: *v.NextDoseAt, Horizon: vaccinationHorizon}
		}
		doc.Items = append(doc.Items, item)
	}
	return doc
}

func MedicalRecordsDocument(records []domain.MedicalRecord) Document {
	doc := Document{
		Title:   "Medical records",
		Summary: fmt.Sprintf("records: %d", len(records)),
		Empty:   "No medical records.",
	}
	for _, record := range records {
		item := Item{
			Title: fmt.Sprintf("%s (%s)", record.Title, record.ID),
			Badge: record.Kind,
			Details: []string{
				field("date", formatDate(record.RecordedAt)),
				field("vet", record.Veterinarian),
				record.Description,
			},
		}
		for _, attachment := range record.Attachments {
			item.Details = append(item.Details, field("attachment", attachment.FileName+" "+attachment.URL))
		}
		doc.Items = append(doc.Items, item)
	}
	return doc
}

func ProvidersDocument(providers []domain.ServiceProvider) Document {
	doc := Document{
		Title:   "Service providers",
		Summary: fmt.Sprintf("providers: %d", len(providers)),
		Empty:   "No providers match.",
	}
	for _, provider := range providers {
		item := Item{
			Title:   fmt.Sprintf("%s (%s)", provider.Name, provider.ID),
			Badge:   provider.Kind.Label(),
			Details: []string{field("city", provider.City)},
			Meter:   &Meter{Label: fmt.Sprintf("rating (%d reviews)", provider.Reviews), Value: provider.Rating, Max: 5},
		}
		for _, offering := range provider.Offerings {
			item.Details = append(item.Details, fmt.Sprintf("- %s (%s): %s", offering.Name, offering.ID, formatNumber(offering.Price)))
		}
		doc.Items = append(doc.Items, item)
	}
	return doc
}

func ContractsDocument(contracts []domain.ServiceContract) Document {
	doc := Document{
		Title:   "Service contracts",
		Summary: fmt.Sprintf("contracts: %d", len(contracts)),
		Empty:   "No contracts yet.",
	}
	for _, contract := range contracts {
		item := Item{
			Title: contract.ID,
			Badge: string(contract.Status),
			Details: []string{
				field("provider", contract.ProviderID),
				field("service", contract.ServiceID),
				field("pet", contract.PetID),
				field("price", formatNumber(contract.Price)),
				field("notes", contract.Notes),
			},
		}
		if !contract.ScheduledAt.IsZero() && contract.Status != domain.ContractCancelled && contract.Status != domain.ContractCompleted {
			item.Due = &Due{Label: "scheduled", At: contract.ScheduledAt, Horizon: 7 * 24 * time.Hour}
		}
		doc.Items = append(doc.Items, item)
	}
	return doc
}

func PlansDocument(plans []domain.Plan) Document {
	doc := Document{Title: "Plans", Summary: fmt.Sprintf("plans: %d", len(plans)), Empty: "No plans available."}
	for _, plan := range plans {
		price := formatNumber(plan.Price)
		if plan.Currency != "" {
			price = plan.Currency + " " + price
		}
		item := Item{
			Title:   fmt.Sprintf("%s (%s)", plan.Name, plan.ID),
			Badge:   plan.BillingPeriod,
			Details: []string{field("price", price)},
		}
		for _, feature := range plan.Features {
			item.Details = append(item.Details, "- "+feature)
		}
		doc.Items = append(doc.Items, item)
	}
	return doc
}

func SubscriptionDocument(sub domain.Subscription) Document {
	name := sub.PlanName
	if name == "" {
		name = sub.PlanID
	}
	item := Item{
		Title: fmt.Sprintf("%s (%s)", name, sub.ID),
		Badge: sub.Status,
		Details: []string{
			field("started", formatDate(sub.StartedAt)),
			field("auto renew", yesNo(sub.WillRenew)),
		},
	}
	if sub.RenewsAt != nil {
		item.Due = &Due{Label: "renews", At: *sub.RenewsAt}
	}
	return Document{Title: "Subscription", Items: []Item{item}}
}

func CampaignsDocument(campaigns []domain.Campaign) Document {
	doc := Document{
		Title:   "Campaigns",
		Summary: fmt.Sprintf("campaigns: %d", len(campaigns)),
		Empty:   "No campaigns.",
	}
	for _, campaign := range campaigns {
		item := Item{
			Title: fmt.Sprintf("%s (%s)", campaign.Title, campaign.ID),
			Badge: campaign.Status,
			Details: []string{
				campaign.Description,
				field("audience", string(campaign.Audience)),
				field("starts", formatDate(campaign.StartsAt)),
				field("banner", campaign.BannerURL),
			},
		}
		if campaign.Discount > 0 {
			item.Details = append(item.Details, field("discount", formatNumber(campaign.Discount)+"%"))
		}
		if campaign.EndsAt != nil {
			item.Due = &Due{Label: "ends", At: *campaign.EndsAt}
		}
		doc.Items = append(doc.Items, item)
	}
	return doc
}

func FeedbackDocument(entries []domain.Feedback) Document {
	doc := Document{
		Title:   "Feedback",
		Summary: fmt.Sprintf("reviews: %d", len(entries)),
		Empty:   "No feedback yet.",
	}
	for _, entry := range entries {
		doc.Items = append(doc.Items, Item{
			Title: entry.ID,
			Details: []string{
				field("provider", entry.ProviderID),
				field("contract", entry.ContractID),
				entry.Comment,
			},
			Meter: &Meter{Label: "rating", Value: float64(entry.Rating), Max: 5},
		})
	}
	return doc
}

func NotificationsDocument(notifications []domain.Notification) Document {
	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	doc := Document{
		Title:   "Notifications",
		Summary: fmt.Sprintf("notifications: %d, unread: %d", len(notifications), unread),
		Empty:   "You are all caught up.",
	}
	for _, n := range notifications {
		badge := "read"
		if !n.Read {
			badge = "new"
		}
		doc.Items = append(doc.Items, Item{
			Title:   fmt.Sprintf("%s (%s)", n.Title, n.ID),
			Badge:   badge,
			Details: []string{n.Message, field("received", formatDate(n.CreatedAt))},
		})
	}
	return doc
}

func ReportDocument(report domain.Report) Document {
	doc := Document{
		Title:   fmt.Sprintf("Report: %s", report.Kind),
		Summary: fmt.Sprintf("period: %s to %s", formatDate(report.From), formatDate(report.To)),
		Empty:   "Report has no totals.",
	}

	keys := make([]string, 0, len(report.Totals))
	for key := range report.Totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	item := Item{Title: "Totals"}
	for _, key := range keys {
		item.Details = append(item.Details, field(key, formatNumber(report.Totals[key])))
	}
	if len(report.Rows) > 0 {
		item.Details = append(item.Details, fmt.Sprintf("rows: %d (use --json for the full table)", len(report.Rows)))
	}
	if len(item.Details) > 0 {
		doc.Items = []Item{item}
	}
	return doc
}

func DashboardDocument(summary domain.DashboardSummary) Document {
	doc := Document{
		Title: fmt.Sprintf("%s dashboard", summary.Role.Label()),
		Empty: "No metrics yet.",
	}
	for _, metric := range summary.Metrics {
		item := Item{Title: metric.Label, Details: []string{formatNumber(metric.Value)}}
		if metric.Delta != 0 {
			item.Badge = fmt.Sprintf("%+.1f%%", metric.Delta)
		}
		doc.Items = append(doc.Items, item)
	}
	for _, alert := range summary.Alerts {
		doc.Items = append(doc.Items, Item{Title: alert.Title, Warning: alert.Message})
	}
	return doc
}

// field renders "label: value" and drops the line when value is blank.
func field(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
