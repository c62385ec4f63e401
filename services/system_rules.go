package services

import (
	"github.com/FinanzasVH/finanzas-api/models"
)

// SystemRules is the built-in rule collection. It is read-only at
// classification time and always evaluated after the user's custom
// rules. Order matters: the first matching rule wins.
var SystemRules = []models.ClassificationRule{
	{Label: "Wong / Vivanda", Pattern: `WONG|VIVANDA`, Type: models.TypeVariableExpense, Category: "Alimentación"},
	{Label: "Plaza Vea", Pattern: `PLAZA.?VEA|SPSA|PVEA`, Type: models.TypeVariableExpense, Category: "Alimentación"},
	{Label: "Metro / Cencosud", Pattern: `METRO\b|CENCOSUD`, Type: models.TypeVariableExpense, Category: "Alimentación"},
	{Label: "Tottus / Makro", Pattern: `TOTTUS|MAKRO`, Type: models.TypeVariableExpense, Category: "Alimentación"},
	{Label: "La Chalupa", Pattern: `CORPORACION.LA.C|CHALUPA`, Type: models.TypeVariableExpense, Category: "Alimentación"},
	{Label: "Canasto", Pattern: `CANASTO|OPENPAY.*CANASTO`, Type: models.TypeVariableExpense, Category: "Alimentación"},
	{Label: "MASS / Tambo", Pattern: `MASS\b|TAMBO`, Type: models.TypeVariableExpense, Category: "Alimentación"},
	{Label: "InkaFarma", Pattern: `IKF|INKAFARMA`, Type: models.TypeVariableExpense, Category: "Salud/Farmacia"},
	{Label: "Mifarma / Botica", Pattern: `MIFARMA|FASA|BOTICA`, Type: models.TypeVariableExpense, Category: "Salud/Farmacia"},
	{Label: "Grifo / Gasolina", Pattern: `PRIMAX|REPSOL|PECSA|PETRO|GRIFO|GO COMBUSTIBLES`, Type: models.TypeVariableExpense, Category: "Transporte/Gasolina"},
	{Label: "Uber / Cabify", Pattern: `UBER|CABIFY|INDRIVER`, Type: models.TypeVariableExpense, Category: "Transporte/Gasolina"},
	{Label: "Parking", Pattern: `APPARKA|PARKING|PARQUEO`, Type: models.TypeVariableExpense, Category: "Transporte/Gasolina"},
	{Label: "Netflix", Pattern: `NETFLIX`, Type: models.TypeFixedExpense, Category: "Suscripciones"},
	{Label: "Apple", Pattern: `APPLE\b|APPLE\.COM`, Type: models.TypeFixedExpense, Category: "Suscripciones"},
	{Label: "Spotify", Pattern: `SPOTIFY`, Type: models.TypeFixedExpense, Category: "Suscripciones"},
	{Label: "Pacífico / Rimac", Pattern: `PACIFICO|RIMAC|MAPFRE`, Type: models.TypeFixedExpense, Category: "Seguros"},
	{Label: "Seguro desgravamen", Pattern: `SEGURO.?DESGRAVAMEN|DESGRAVAMEN`, Type: models.TypeFixedExpense, Category: "Seguros"},
	{Label: "Luz Enel", Pattern: `ENEL|LUZ.DEL.SUR`, Type: models.TypeFixedExpense, Category: "Luz"},
	{Label: "Agua Sedapal", Pattern: `SEDAPAL`, Type: models.TypeFixedExpense, Category: "Agua"},
	{Label: "Internet / Telefonía", Pattern: `CLARO|MOVISTAR|ENTEL`, Type: models.TypeFixedExpense, Category: "Internet/Cable"},
	{Label: "Pago Tarjeta BBVA", Pattern: `BM\.?\s*PAGO.?TARJET|PAGO.*TARJETA.*BBVA`, Type: models.TypeDebtPayment, Category: "Tarjeta BBVA"},
	{Label: "Pago Tarjeta iO", Pattern: `PAGO.*IO|IO.*PAGO`, Type: models.TypeDebtPayment, Category: "Tarjeta iO"},
	{Label: "Sueldo", Pattern: `SUELDO|REMUNERACION|HABERES|MINEDU`, Type: models.TypeIncome, Category: "Sueldo"},
	{Label: "Gratificación", Pattern: `GRATIFICACION`, Type: models.TypeIncome, Category: "Gratificación"},
	{Label: "CTS", Pattern: `CTS\b`, Type: models.TypeIncome, Category: "CTS"},
	{Label: "Agora Ahorro", Pattern: `AGORA`, Type: models.TypeSavings, Category: "Ahorro programado"},
	{Label: "Restaurantes", Pattern: `RESTAURAN|KFC|MC.?DONALD|BEMBOS|PIZZA|BUFFET|CHIFA|PARRI`, Type: models.TypeVariableExpense, Category: "Restaurante"},
	{Label: "Ropa / Tiendas", Pattern: `SAGA|FALABELLA|RIPLEY|ZARA|OECHSLE`, Type: models.TypeVariableExpense, Category: "Ropa"},
	{Label: "Compras online", Pattern: `AMAZON|MERCADO.?LIBRE|LINIO`, Type: models.TypeVariableExpense, Category: "Compras online"},

	// Movements between own accounts. These must never be imported as
	// plain expenses; the review flow turns them into transfer pairs.
	{Label: "Transfer BBVA→BCP", Pattern: `Transferencia a BCP Digital|TRANSF.*BCP`, Type: models.TypeVariableExpense, Category: "Movimiento interno", IsInternal: true},
	{Label: "Transfer BCP→BBVA", Pattern: `TRANSF\.BCO\.BBVA|BANCO DE CREDITO D|TRAN\.CTAS\.TERC\.BM`, Type: models.TypeVariableExpense, Category: "Movimiento interno", IsInternal: true},
	{Label: "Transfer Yape", Pattern: `YAPE.*SALIDA|TRANSF.*YAPE`, Type: models.TypeVariableExpense, Category: "Movimiento interno", IsInternal: true},
	{Label: "Transfer entre ctas", Pattern: `TRANSF.*CTA|CTA.*TRANSF|TRANSFER.*PROPIA`, Type: models.TypeVariableExpense, Category: "Movimiento interno", IsInternal: true},
	{Label: "Transf inmediata BCP", Pattern: `TRANSF INMEDIATA AL 002|TRANSF.*INMEDIATA.*002`, Type: models.TypeVariableExpense, Category: "Movimiento interno", IsInternal: true},

	{Label: "Promart / Sodimac", Pattern: `PROMART|SODIMAC`, Type: models.TypeVariableExpense, Category: "Otro variable"},
}
