package document

import "github.com/etaxql/etaxql/internal/scalar"

// party holds the fields Seller and Buyer share.
type party struct{ object }

func (p *party) Name() (*scalar.String, error)         { return p.str("Name") }
func (p *party) TaxID() (*scalar.String, error)        { return p.str("TaxID") }
func (p *party) TaxIDType() (*scalar.String, error)    { return p.str("TaxIDType") }
func (p *party) BuildingNo() (*scalar.Int, error)      { return p.integer("BuildingNo") }
func (p *party) BuildingName() (*scalar.String, error) { return p.str("BuildingName") }
func (p *party) Street() (*scalar.String, error)       { return p.str("Street") }
func (p *party) District() (*scalar.String, error)     { return p.str("District") }
func (p *party) City() (*scalar.String, error)         { return p.str("City") }
func (p *party) Province() (*scalar.String, error)     { return p.str("Province") }
func (p *party) PostalCode() (*scalar.Int, error)      { return p.integer("PostalCode") }
func (p *party) CountryCode() (*scalar.String, error)  { return p.str("CountryCode") }
func (p *party) CountryName() (*scalar.String, error)  { return p.str("CountryName") }
func (p *party) Telephone() (*scalar.String, error)    { return p.str("Telephone") }
func (p *party) Fax() (*scalar.String, error)          { return p.str("Fax") }
func (p *party) Contact() (*scalar.String, error)      { return p.str("Contact") }
func (p *party) Department() (*scalar.String, error)   { return p.str("Department") }
func (p *party) Email() (*scalar.String, error)        { return p.str("Email") }

// Seller is the issuing party of a document.
type Seller struct{ party }

func (s *Seller) ID() (*scalar.String, error)  { return s.str("ID") }
func (s *Seller) Branch() (*scalar.Int, error) { return s.integer("Branch") }

// Buyer is the receiving party. Unlike Seller its ID is numeric and its
// branch is free text.
type Buyer struct{ party }

func (b *Buyer) ID() (*scalar.Int, error)        { return b.integer("ID") }
func (b *Buyer) Branch() (*scalar.String, error) { return b.str("Branch") }
