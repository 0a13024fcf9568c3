package tracker

import (
	"fmt"
	"strings"

	"leadtrack_backend/internal/leads/ports"
)

// Placeholders rendered for fields that are not known at card creation time.
// The tracker UI shows the description verbatim, so blanks are never emitted.
const (
	placeholderInvoice  = "[Enter Invoice Number]"
	placeholderPayment  = "[Enter Payment Status]"
	placeholderQuantity = "[Enter Quantity]"
	placeholderDeadline = "[Enter Deadline]"
	placeholderProducts = "[Enter Product Details]"
	placeholderNotes    = "[Enter Design Notes]"
	placeholderContact  = "[Not Provided]"

	deadlineLayout = "02-01-2006"
)

// cardTitle builds the card title from the lead code and customer name.
func cardTitle(cc ports.CardContext) string {
	name := cc.CustomerName
	if name == "" {
		name = placeholderContact
	}
	return fmt.Sprintf("%s | %s", cc.LeadCode, name)
}

// renderDescription builds the full card description. Every optional field
// renders a bracketed placeholder when empty.
func renderDescription(cc ports.CardContext) string {
	var b strings.Builder

	b.WriteString("## Order\n")
	writeField(&b, "Invoice", "", placeholderInvoice)
	writeField(&b, "Payment Status", cc.PaymentStatus, placeholderPayment)
	writeField(&b, "Job ID", cc.JobID.String(), placeholderContact)
	writeField(&b, "Quantity", cc.Quantity, placeholderQuantity)

	deadline := placeholderDeadline
	if cc.Deadline != nil {
		deadline = cc.Deadline.Format(deadlineLayout)
	}
	writeField(&b, "Deadline", deadline, placeholderDeadline)

	b.WriteString("\n## Products\n")
	if len(cc.Products) > 0 {
		for _, p := range cc.Products {
			b.WriteString("- ")
			b.WriteString(p)
			b.WriteString("\n")
		}
	} else {
		b.WriteString(placeholderProducts)
		b.WriteString("\n")
	}

	b.WriteString("\n## Customer\n")
	writeField(&b, "Name", cc.CustomerName, placeholderContact)
	writeField(&b, "Company", cc.Company, placeholderContact)
	writeField(&b, "Email", cc.CustomerEmail, placeholderContact)
	writeField(&b, "Phone", cc.CustomerPhone, placeholderContact)
	writeField(&b, "Lead", cc.LeadCode, placeholderContact)

	b.WriteString("\n## Design Notes\n")
	if cc.DesignNotes != "" {
		b.WriteString(cc.DesignNotes)
	} else {
		b.WriteString(placeholderNotes)
	}
	b.WriteString("\n")

	return b.String()
}

func writeField(b *strings.Builder, label, value, placeholder string) {
	if value == "" {
		value = placeholder
	}
	fmt.Fprintf(b, "**%s:** %s\n", label, value)
}
