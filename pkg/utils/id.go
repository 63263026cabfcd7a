package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderNumber gera o número de pedido legível exibido para o cliente
func GenerateOrderNumber() (string, error) {
	return gonanoid.Generate(orderNumberAlphabet, 8)
}
