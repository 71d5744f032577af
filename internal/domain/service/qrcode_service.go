package service

// QRCodeService renders share codes for catalog entries.
type QRCodeService interface {
	// GenerateProductQR returns a PNG encoding the public URL of a product.
	GenerateProductQR(productID int64) ([]byte, error)
}
