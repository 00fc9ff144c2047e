package controllers

// Response texts returned to API clients.
const (
	msgListFailed       = "Erro na requisição."
	msgProductNotFound  = "Produto não encontrado ou erro na requisição."
	msgCategoryNotFound = "Categoria não encontrada ou erro na requisição."
	msgPriceNotFound    = "Nenhum produto encontrado na faixa de preço especificada."

	msgOrderSent       = "Pedido enviado com sucesso"
	msgOrderNotFound   = "Nenhum produto encontrado com os IDs fornecidos"
	msgOrderDownstream = "Erro ao enviar pedido para o endpoint externo: "
	msgOrderInternal   = "Erro ao processar e enviar pedido: "
)
