package reports

import (
	"context"
	"sort"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/pkg/logger"
)

// Service builds statutory GST reports. Reports are read models: the
// same period against the same posted documents yields the same
// report, byte for byte.
type Service struct {
	repo Repository
}

// NewService creates a new report service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validatePeriod(p Period) error {
	if p.From.IsZero() || p.To.IsZero() {
		return apperror.NewValidation("period requires from and to dates")
	}
	if p.From.After(p.To) {
		return apperror.NewValidation("from date must not be after to date")
	}
	return nil
}

// GSTR1 builds the outward supplies return for the period.
func (s *Service) GSTR1(ctx context.Context, organizationID id.ID, period Period) (*GSTR1Report, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	sales, err := s.repo.GetSalesRows(ctx, organizationID, period)
	if err != nil {
		return nil, err
	}
	creditNotes, err := s.repo.GetCreditNoteRows(ctx, organizationID, period)
	if err != nil {
		return nil, err
	}

	report := BuildGSTR1(period, sales, creditNotes)

	logger.Debug(ctx, "gstr1 built",
		"organization_id", organizationID,
		"invoices", report.InvoiceCount,
		"credit_notes", report.CreditNoteCount)

	return report, nil
}

// GSTR3B builds the summary return for the period.
func (s *Service) GSTR3B(ctx context.Context, organizationID id.ID, period Period) (*GSTR3BReport, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	sales, err := s.repo.GetSalesRows(ctx, organizationID, period)
	if err != nil {
		return nil, err
	}
	creditNotes, err := s.repo.GetCreditNoteRows(ctx, organizationID, period)
	if err != nil {
		return nil, err
	}
	purchases, err := s.repo.GetPurchaseRows(ctx, organizationID, period)
	if err != nil {
		return nil, err
	}
	debitNotes, err := s.repo.GetDebitNoteRows(ctx, organizationID, period)
	if err != nil {
		return nil, err
	}

	return BuildGSTR3B(period, sales, creditNotes, purchases, debitNotes), nil
}

// HSNSummary builds the HSN-wise outward summary for the period.
func (s *Service) HSNSummary(ctx context.Context, organizationID id.ID, period Period) (*HSNSummaryReport, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	sales, err := s.repo.GetSalesRows(ctx, organizationID, period)
	if err != nil {
		return nil, err
	}

	return BuildHSNSummary(period, sales), nil
}

// TaxSummary builds the rate-wise outward summary for the period.
func (s *Service) TaxSummary(ctx context.Context, organizationID id.ID, period Period) (*TaxSummaryReport, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	sales, err := s.repo.GetSalesRows(ctx, organizationID, period)
	if err != nil {
		return nil, err
	}

	return BuildTaxSummary(period, sales), nil
}

// BuildGSTR1 classifies outward documents into the GSTR-1 sections.
// Registered customers go to B2B; unregistered ones split on the
// document total: above the threshold itemized as B2C-Large,
// otherwise aggregated by rate as B2C-Small.
func BuildGSTR1(period Period, sales, creditNotes []SalesLineRow) *GSTR1Report {
	report := &GSTR1Report{
		Period:            period,
		B2B:               []InvoiceEntry{},
		B2CLarge:          []InvoiceEntry{},
		B2CSmall:          []RateBucket{},
		CreditNotes:       []InvoiceEntry{},
		HSN:               []HSNBucket{},
		TotalTaxableValue: types.Zero(),
		TotalTax:          types.Zero(),
	}

	byDoc := groupByDocument(sales)
	report.InvoiceCount = len(byDoc)

	smallRates := map[string]*RateBucket{}
	smallCounted := map[docRateKey]bool{}

	for _, doc := range byDoc {
		entry := toInvoiceEntry(doc)
		switch {
		case doc[0].CustomerGSTIN != "":
			report.B2B = append(report.B2B, entry)
		case doc[0].DocumentTotal.GreaterThan(B2CLargeThreshold):
			report.B2CLarge = append(report.B2CLarge, entry)
		default:
			for _, row := range doc {
				b := rateBucket(smallRates, row.GSTRate)
				countDocument(b, smallCounted, row)
				accumulate(b, row)
			}
		}
	}

	for _, doc := range groupByDocument(creditNotes) {
		report.CreditNotes = append(report.CreditNotes, toInvoiceEntry(doc))
	}
	report.CreditNoteCount = len(report.CreditNotes)

	report.B2CSmall = sortedRateBuckets(smallRates)
	report.HSN = buildHSNBuckets(sales)

	sortEntries(report.B2B)
	sortEntries(report.B2CLarge)
	sortEntries(report.CreditNotes)

	for _, row := range sales {
		report.TotalTaxableValue = report.TotalTaxableValue.Add(row.TaxableValue)
		report.TotalTax = report.TotalTax.Add(rowTax(row))
	}

	return report
}

// BuildGSTR3B nets outward supplies against credit notes and input
// credit against debit notes, then floors the payable at zero per head.
func BuildGSTR3B(period Period, sales, creditNotes []SalesLineRow, purchases, debitNotes []PurchaseLineRow) *GSTR3BReport {
	outward := sumSales(sales)
	outward = subtractSection(outward, sumSales(creditNotes))

	itc := sumPurchases(purchases)
	itc = subtractSection(itc, sumPurchases(debitNotes))

	return &GSTR3BReport{
		Period:          period,
		OutwardSupplies: outward,
		ITCAvailable:    itc,
		NetCGST:         floorZero(outward.CGST.Sub(itc.CGST)),
		NetSGST:         floorZero(outward.SGST.Sub(itc.SGST)),
		NetIGST:         floorZero(outward.IGST.Sub(itc.IGST)),
		NetCess:         floorZero(outward.Cess.Sub(itc.Cess)),
	}
}

// BuildHSNSummary groups outward lines by HSN code and rate.
func BuildHSNSummary(period Period, sales []SalesLineRow) *HSNSummaryReport {
	report := &HSNSummaryReport{
		Period:            period,
		Buckets:           buildHSNBuckets(sales),
		TotalTaxableValue: types.Zero(),
		TotalTax:          types.Zero(),
	}
	for _, b := range report.Buckets {
		report.TotalTaxableValue = report.TotalTaxableValue.Add(b.TaxableValue)
		report.TotalTax = report.TotalTax.Add(b.TotalTax)
	}
	return report
}

// BuildTaxSummary groups outward lines by GST rate.
func BuildTaxSummary(period Period, sales []SalesLineRow) *TaxSummaryReport {
	rates := map[string]*RateBucket{}
	counted := map[docRateKey]bool{}
	docs := map[id.ID]bool{}
	totals := RateBucket{
		TaxableValue: types.Zero(),
		CGST:         types.Zero(),
		SGST:         types.Zero(),
		IGST:         types.Zero(),
		Cess:         types.Zero(),
		TotalTax:     types.Zero(),
	}

	for _, row := range sales {
		b := rateBucket(rates, row.GSTRate)
		countDocument(b, counted, row)
		accumulate(b, row)
		docs[row.DocumentID] = true

		totals.TaxableValue = totals.TaxableValue.Add(row.TaxableValue)
		totals.CGST = totals.CGST.Add(row.CGST)
		totals.SGST = totals.SGST.Add(row.SGST)
		totals.IGST = totals.IGST.Add(row.IGST)
		totals.Cess = totals.Cess.Add(row.Cess)
		totals.TotalTax = totals.TotalTax.Add(rowTax(row))
	}
	totals.Count = len(docs)

	return &TaxSummaryReport{
		Period: period,
		ByRate: sortedRateBuckets(rates),
		Totals: totals,
	}
}

type docRateKey struct {
	doc  id.ID
	rate string
}

// countDocument bumps the bucket's distinct-document count once per
// document and rate.
func countDocument(b *RateBucket, seen map[docRateKey]bool, row SalesLineRow) {
	k := docRateKey{doc: row.DocumentID, rate: row.GSTRate.String()}
	if !seen[k] {
		b.Count++
		seen[k] = true
	}
}

func rowTax(row SalesLineRow) types.Money {
	return row.CGST.Add(row.SGST).Add(row.IGST).Add(row.Cess)
}

func floorZero(v types.Money) types.Money {
	if v.IsNegative() {
		return types.Zero()
	}
	return v
}

// groupByDocument preserves row order inside each document and orders
// documents by number so the report output is stable.
func groupByDocument(rows []SalesLineRow) [][]SalesLineRow {
	index := map[id.ID]int{}
	var docs [][]SalesLineRow
	for _, row := range rows {
		i, ok := index[row.DocumentID]
		if !ok {
			i = len(docs)
			index[row.DocumentID] = i
			docs = append(docs, nil)
		}
		docs[i] = append(docs[i], row)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i][0].DocumentNumber < docs[j][0].DocumentNumber
	})
	return docs
}

func toInvoiceEntry(doc []SalesLineRow) InvoiceEntry {
	head := doc[0]
	rates := map[string]*RateBucket{}
	for _, row := range doc {
		accumulate(rateBucket(rates, row.GSTRate), row)
	}
	return InvoiceEntry{
		DocumentID:     head.DocumentID,
		DocumentNumber: head.DocumentNumber,
		DocumentDate:   head.DocumentDate,
		CustomerName:   head.CustomerName,
		CustomerGSTIN:  head.CustomerGSTIN,
		StateCode:      head.CustomerStateCode,
		DocumentTotal:  head.DocumentTotal,
		Rates:          sortedRateBuckets(rates),
	}
}

func rateBucket(m map[string]*RateBucket, rate types.Money) *RateBucket {
	key := rate.String()
	b, ok := m[key]
	if !ok {
		b = &RateBucket{
			GSTRate:      rate,
			TaxableValue: types.Zero(),
			CGST:         types.Zero(),
			SGST:         types.Zero(),
			IGST:         types.Zero(),
			Cess:         types.Zero(),
			TotalTax:     types.Zero(),
		}
		m[key] = b
	}
	return b
}

func accumulate(b *RateBucket, row SalesLineRow) {
	b.TaxableValue = b.TaxableValue.Add(row.TaxableValue)
	b.CGST = b.CGST.Add(row.CGST)
	b.SGST = b.SGST.Add(row.SGST)
	b.IGST = b.IGST.Add(row.IGST)
	b.Cess = b.Cess.Add(row.Cess)
	b.TotalTax = b.TotalTax.Add(rowTax(row))
}

func sortedRateBuckets(m map[string]*RateBucket) []RateBucket {
	out := make([]RateBucket, 0, len(m))
	for _, b := range m {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GSTRate.LessThan(out[j].GSTRate)
	})
	return out
}

func sortEntries(entries []InvoiceEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DocumentNumber < entries[j].DocumentNumber
	})
}

func buildHSNBuckets(rows []SalesLineRow) []HSNBucket {
	type key struct {
		hsn  string
		rate string
	}
	index := map[key]*HSNBucket{}
	for _, row := range rows {
		k := key{hsn: row.HSNCode, rate: row.GSTRate.String()}
		b, ok := index[k]
		if !ok {
			b = &HSNBucket{
				HSNCode:      row.HSNCode,
				Description:  row.Description,
				UQC:          row.UQC,
				GSTRate:      row.GSTRate,
				Quantity:     types.Zero(),
				TaxableValue: types.Zero(),
				CGST:         types.Zero(),
				SGST:         types.Zero(),
				IGST:         types.Zero(),
				Cess:         types.Zero(),
				TotalTax:     types.Zero(),
			}
			index[k] = b
		}
		b.Quantity = b.Quantity.Add(row.Quantity)
		b.TaxableValue = b.TaxableValue.Add(row.TaxableValue)
		b.CGST = b.CGST.Add(row.CGST)
		b.SGST = b.SGST.Add(row.SGST)
		b.IGST = b.IGST.Add(row.IGST)
		b.Cess = b.Cess.Add(row.Cess)
		b.TotalTax = b.TotalTax.Add(rowTax(row))
	}

	out := make([]HSNBucket, 0, len(index))
	for _, b := range index {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].HSNCode != out[j].HSNCode {
			return out[i].HSNCode < out[j].HSNCode
		}
		return out[i].GSTRate.LessThan(out[j].GSTRate)
	})
	return out
}

func sumSales(rows []SalesLineRow) GSTR3BSection {
	s := zeroSection()
	for _, row := range rows {
		s.TaxableValue = s.TaxableValue.Add(row.TaxableValue)
		s.CGST = s.CGST.Add(row.CGST)
		s.SGST = s.SGST.Add(row.SGST)
		s.IGST = s.IGST.Add(row.IGST)
		s.Cess = s.Cess.Add(row.Cess)
	}
	return s
}

func sumPurchases(rows []PurchaseLineRow) GSTR3BSection {
	s := zeroSection()
	for _, row := range rows {
		s.TaxableValue = s.TaxableValue.Add(row.TaxableValue)
		s.CGST = s.CGST.Add(row.CGST)
		s.SGST = s.SGST.Add(row.SGST)
		s.IGST = s.IGST.Add(row.IGST)
		s.Cess = s.Cess.Add(row.Cess)
	}
	return s
}

func subtractSection(a, b GSTR3BSection) GSTR3BSection {
	return GSTR3BSection{
		TaxableValue: a.TaxableValue.Sub(b.TaxableValue),
		CGST:         a.CGST.Sub(b.CGST),
		SGST:         a.SGST.Sub(b.SGST),
		IGST:         a.IGST.Sub(b.IGST),
		Cess:         a.Cess.Sub(b.Cess),
	}
}

func zeroSection() GSTR3BSection {
	return GSTR3BSection{
		TaxableValue: types.Zero(),
		CGST:         types.Zero(),
		SGST:         types.Zero(),
		IGST:         types.Zero(),
		Cess:         types.Zero(),
	}
}
