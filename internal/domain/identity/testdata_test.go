package identity

const frontText = `INSTITUTO NACIONAL ELECTORAL
MÉXICO
CREDENCIAL PARA VOTAR
NOMBRE
GÓMEZ
MARTÍNEZ
JOSÉ LUIS
DOMICILIO
C MORELOS 123 INT 4
COL CENTRO 06000
CUAUHTÉMOC, CDMX
CLAVE DE ELECTOR GOMRJS85010109H100
CURP GOMJ850101HDFXYZ08
FECHA DE NACIMIENTO 01/01/1985
SECCIÓN 1234 VIGENCIA 2023 - 2033
SEXO H`

const backText = `IDMEX1234567890<<0123456789012
GOMEZ<<MARTINEZ<JOSE<LUIS
CURP PEGJ900215MJCRRN08
FIRMA
HUELLA`
